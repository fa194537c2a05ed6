package voice_test

import (
	"encoding/json"
	"testing"

	"github.com/book-expert/elevenlabs-tts/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoice_EqualUsesIDOnly(t *testing.T) {
	t.Parallel()

	first := voice.Voice{ID: "v1", Name: "Rachel", PreviewURL: "", Category: "premade"}
	renamed := voice.Voice{ID: "v1", Name: "Rachel (cloned)", PreviewURL: "x", Category: "cloned"}
	other := voice.Voice{ID: "v2", Name: "Rachel", PreviewURL: "", Category: "premade"}

	assert.True(t, first.Equal(renamed))
	assert.False(t, first.Equal(other))
	assert.Equal(t, "Rachel", first.String())
}

func TestVoice_DecodesListingFields(t *testing.T) {
	t.Parallel()

	payload := `{"voice_id":"21m00Tcm4TlvDq8ikWAM","name":"Rachel",` +
		`"preview_url":"https://example.com/rachel.mp3","category":"premade"}`

	var decoded voice.Voice

	err := json.Unmarshal([]byte(payload), &decoded)
	require.NoError(t, err)

	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", decoded.ID)
	assert.Equal(t, "Rachel", decoded.Name)
	assert.Equal(t, "https://example.com/rachel.mp3", decoded.PreviewURL)
	assert.Equal(t, "premade", decoded.Category)
}

func TestFind(t *testing.T) {
	t.Parallel()

	voices := []voice.Voice{
		{ID: "a", Name: "Adam"},
		{ID: "b", Name: "Bella"},
	}

	found, ok := voice.Find(voices, "b")
	require.True(t, ok)
	assert.Equal(t, "Bella", found.Name)

	_, ok = voice.Find(voices, "missing")
	assert.False(t, ok)
}
