package elevenlabs

// Model identifiers offered in the configuration. The client does not validate them.
const (
	ModelMultilingualV2 = "eleven_multilingual_v2"
	ModelFlashV2_5      = "eleven_flash_v2_5"
	ModelTurboV2_5      = "eleven_turbo_v2_5"
)

const percentScale = 100.0

// languageEnforcingModels accept a language_code field; other models reject it.
var languageEnforcingModels = map[string]struct{}{
	ModelFlashV2_5: {},
	ModelTurboV2_5: {},
}

// Models returns the advisory model list in display order.
func Models() []string {
	return []string{ModelMultilingualV2, ModelFlashV2_5, ModelTurboV2_5}
}

// SynthesisRequest is an immutable snapshot of the parameters for one synthesis call.
// Stability and Speed are normalised to [0.0, 1.0].
type SynthesisRequest struct {
	Text         string
	VoiceID      string
	ModelID      string
	LanguageCode string
	Stability    float64
	Speed        float64
}

// NewSynthesisRequest builds a request from slider percentages (0-100).
func NewSynthesisRequest(
	text, voiceID, modelID string,
	stabilityPercent, speedPercent int,
	languageCode string,
) SynthesisRequest {
	return SynthesisRequest{
		Text:         text,
		VoiceID:      voiceID,
		ModelID:      modelID,
		LanguageCode: languageCode,
		Stability:    PercentToUnit(stabilityPercent),
		Speed:        PercentToUnit(speedPercent),
	}
}

// PercentToUnit converts an integer percentage to the unit interval, clamping
// values outside 0-100.
func PercentToUnit(percent int) float64 {
	switch {
	case percent <= 0:
		return 0
	case percent >= percentScale:
		return 1
	default:
		return float64(percent) / percentScale
	}
}

// speechBody is the JSON payload of POST /v1/text-to-speech/{voice_id}.
type speechBody struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	LanguageCode  string        `json:"language_code,omitempty"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// body builds the wire payload. The speed value travels in similarity_boost.
func (r SynthesisRequest) body() speechBody {
	payload := speechBody{
		Text:         r.Text,
		ModelID:      r.ModelID,
		LanguageCode: "",
		VoiceSettings: voiceSettings{
			Stability:       r.Stability,
			SimilarityBoost: r.Speed,
		},
	}

	if _, ok := languageEnforcingModels[r.ModelID]; ok {
		payload.LanguageCode = r.LanguageCode
	}

	return payload
}
