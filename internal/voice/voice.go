// Package voice defines the speaker identities offered by the ElevenLabs service.
package voice

// Voice is a server-side selectable speaker identity as returned by the voice listing.
// Values are never mutated after they are decoded.
type Voice struct {
	ID         string `json:"voice_id"`
	Name       string `json:"name"`
	PreviewURL string `json:"preview_url"`
	Category   string `json:"category"`
}

// Equal reports whether both voices refer to the same server-side identity.
func (v Voice) Equal(other Voice) bool {
	return v.ID == other.ID
}

// String returns the display name.
func (v Voice) String() string {
	return v.Name
}

// Find returns the voice with the given id from a listing.
func Find(voices []Voice, id string) (Voice, bool) {
	for _, candidate := range voices {
		if candidate.ID == id {
			return candidate, true
		}
	}

	return Voice{}, false
}
