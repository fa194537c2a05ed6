// Package settings holds the user configuration that drives every synthesis request
// and persists it as JSON in the per-user configuration directory.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/book-expert/elevenlabs-tts/internal/elevenlabs"
)

// Default values.
const (
	DefaultStability       = 50
	DefaultSimilarityBoost = 75
	DefaultStyle           = 0
	DefaultSpeed           = 50
	DefaultOutputFormat    = FormatMP3_44100_192

	minPercent = 0
	maxPercent = 100

	clipNameFallback = "voice"
	clipNameFormat   = "%s_%03d.%s"
)

// Validation errors.
var (
	ErrPercentOutOfRange   = errors.New("percentage must be between 0 and 100")
	ErrUnknownOutputFormat = errors.New("unknown output format")
)

// Configuration is the single active record of user choices for a session.
// JSON keys mirror the field names so existing settings files stay readable.
type Configuration struct {
	APIKey            string       `json:"ApiKey"`
	SelectedVoiceID   string       `json:"SelectedVoiceId"`
	SelectedVoiceName string       `json:"SelectedVoiceName"`
	SelectedModel     string       `json:"SelectedModel"`
	Stability         int          `json:"Stability"`
	SimilarityBoost   int          `json:"SimilarityBoost"`
	Style             int          `json:"Style"`
	UseSpeakerBoost   bool         `json:"UseSpeakerBoost"`
	Speed             int          `json:"Speed"`
	OutputFormat      OutputFormat `json:"OutputFormat"`
	LastFileNumber    int          `json:"LastFileNumber"`
	Language          string       `json:"Language"`
}

// Default returns the configuration used when nothing has been stored yet.
func Default() Configuration {
	return Configuration{
		APIKey:            "",
		SelectedVoiceID:   "",
		SelectedVoiceName: "",
		SelectedModel:     elevenlabs.ModelMultilingualV2,
		Stability:         DefaultStability,
		SimilarityBoost:   DefaultSimilarityBoost,
		Style:             DefaultStyle,
		UseSpeakerBoost:   true,
		Speed:             DefaultSpeed,
		OutputFormat:      DefaultOutputFormat,
		LastFileNumber:    0,
		Language:          DefaultLanguage,
	}
}

// Validate checks the tuning percentages and the output format.
func (c *Configuration) Validate() error {
	percentages := []struct {
		name  string
		value int
	}{
		{"stability", c.Stability},
		{"similarity boost", c.SimilarityBoost},
		{"style", c.Style},
		{"speed", c.Speed},
	}

	for _, percentage := range percentages {
		if percentage.value < minPercent || percentage.value > maxPercent {
			return fmt.Errorf("%w: %s is %d", ErrPercentOutOfRange, percentage.name, percentage.value)
		}
	}

	if !c.OutputFormat.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownOutputFormat, c.OutputFormat)
	}

	return nil
}

// LanguageCode returns the two-letter code for the selected language.
func (c *Configuration) LanguageCode() string {
	return LanguageCode(c.Language)
}

// FileExtension returns the extension saved clips get for the selected output format.
func (c *Configuration) FileExtension() string {
	return c.OutputFormat.Extension()
}

// SynthesisRequest captures the current parameters into an immutable request for text.
func (c *Configuration) SynthesisRequest(text string) elevenlabs.SynthesisRequest {
	return elevenlabs.NewSynthesisRequest(
		text,
		c.SelectedVoiceID,
		c.SelectedModel,
		c.Stability,
		c.Speed,
		c.LanguageCode(),
	)
}

// NextClipName advances the file counter and returns the name for the next saved clip,
// e.g. "Rachel_004.mp3".
func (c *Configuration) NextClipName() string {
	c.LastFileNumber++

	name := strings.ReplaceAll(c.SelectedVoiceName, " ", "")
	if name == "" {
		name = clipNameFallback
	}

	return fmt.Sprintf(clipNameFormat, name, c.LastFileNumber, c.FileExtension())
}
