package settings_test

import (
	"testing"

	"github.com/book-expert/elevenlabs-tts/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := settings.Default()

	assert.Equal(t, 50, cfg.Stability)
	assert.Equal(t, 75, cfg.SimilarityBoost)
	assert.Equal(t, 0, cfg.Style)
	assert.Equal(t, 50, cfg.Speed)
	assert.True(t, cfg.UseSpeakerBoost)
	assert.Equal(t, settings.OutputFormat("mp3_44100_192"), cfg.OutputFormat)
	assert.Equal(t, "English", cfg.Language)
	assert.Equal(t, "eleven_multilingual_v2", cfg.SelectedModel)
	assert.Equal(t, 0, cfg.LastFileNumber)
	require.NoError(t, cfg.Validate())
}

func TestConfiguration_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *settings.Configuration)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(_ *settings.Configuration) {},
			wantErr: nil,
		},
		{
			name:    "stability above range",
			mutate:  func(cfg *settings.Configuration) { cfg.Stability = 101 },
			wantErr: settings.ErrPercentOutOfRange,
		},
		{
			name:    "negative speed",
			mutate:  func(cfg *settings.Configuration) { cfg.Speed = -1 },
			wantErr: settings.ErrPercentOutOfRange,
		},
		{
			name:    "alternate screen format is rejected",
			mutate:  func(cfg *settings.Configuration) { cfg.OutputFormat = "pcm_16000" },
			wantErr: settings.ErrUnknownOutputFormat,
		},
		{
			name:    "pcm format accepted",
			mutate:  func(cfg *settings.Configuration) { cfg.OutputFormat = settings.FormatPCM_24000 },
			wantErr: nil,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := settings.Default()
			testCase.mutate(&cfg)

			err := cfg.Validate()
			if testCase.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestConfiguration_LanguageCode(t *testing.T) {
	t.Parallel()

	expected := map[string]string{
		"English": "en",
		"French":  "fr",
		"Spanish": "es",
		"Italian": "it",
		"German":  "de",
		"Dutch":   "nl",
		"Chinese": "zh",
		"Klingon": "en",
		"":        "en",
	}

	for language, code := range expected {
		cfg := settings.Default()
		cfg.Language = language

		assert.Equal(t, code, cfg.LanguageCode(), "language %q", language)
	}

	assert.Len(t, settings.Languages(), 7)
	assert.True(t, settings.IsSupportedLanguage("Dutch"))
	assert.False(t, settings.IsSupportedLanguage("Klingon"))
}

func TestConfiguration_FileExtension(t *testing.T) {
	t.Parallel()

	for _, format := range settings.OutputFormats() {
		cfg := settings.Default()
		cfg.OutputFormat = format

		if format.IsMP3() {
			assert.Equal(t, "mp3", cfg.FileExtension())
		} else {
			assert.Equal(t, "wav", cfg.FileExtension())
		}

		assert.NotEqual(t, string(format), format.Label())
	}
}

func TestConfiguration_SynthesisRequestNormalizesPercentages(t *testing.T) {
	t.Parallel()

	cfg := settings.Default()
	cfg.SelectedVoiceID = "v1"
	cfg.SelectedModel = "eleven_flash_v2_5"
	cfg.Stability = 30
	cfg.Speed = 80
	cfg.Language = "German"

	req := cfg.SynthesisRequest("Guten Tag")

	assert.Equal(t, "Guten Tag", req.Text)
	assert.Equal(t, "v1", req.VoiceID)
	assert.Equal(t, "eleven_flash_v2_5", req.ModelID)
	assert.InDelta(t, 0.30, req.Stability, 1e-9)
	assert.InDelta(t, 0.80, req.Speed, 1e-9)
	assert.Equal(t, "de", req.LanguageCode)
}

func TestConfiguration_NextClipName(t *testing.T) {
	t.Parallel()

	cfg := settings.Default()
	cfg.SelectedVoiceName = "Old Man Jenkins"
	cfg.LastFileNumber = 3

	assert.Equal(t, "OldManJenkins_004.mp3", cfg.NextClipName())
	assert.Equal(t, 4, cfg.LastFileNumber)

	cfg.SelectedVoiceName = ""
	cfg.OutputFormat = settings.FormatPCM_44100

	assert.Equal(t, "voice_005.wav", cfg.NextClipName())
	assert.Equal(t, 5, cfg.LastFileNumber)
}
