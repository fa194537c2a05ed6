// Package core defines the interfaces shared by the studio session, the synthesis
// worker and the audio archive backends.
package core

import (
	"context"

	"github.com/book-expert/elevenlabs-tts/internal/elevenlabs"
	"github.com/book-expert/elevenlabs-tts/internal/settings"
	"github.com/book-expert/elevenlabs-tts/internal/voice"
)

// ObjectStore defines the interface for interacting with a key-value blob store.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}

// Synthesizer turns one request into one complete audio clip.
type Synthesizer interface {
	Synthesize(ctx context.Context, req elevenlabs.SynthesisRequest) ([]byte, error)
}

// VoiceLister returns the voices available to the configured account.
type VoiceLister interface {
	ListVoices(ctx context.Context) ([]voice.Voice, error)
}

// TTSClient is the full remote surface used by the session.
type TTSClient interface {
	Synthesizer
	VoiceLister
}

// SettingsStore loads and persists the active configuration.
type SettingsStore interface {
	Load() (settings.Configuration, error)
	Save(cfg settings.Configuration) error
}
