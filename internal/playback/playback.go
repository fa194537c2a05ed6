// Package playback plays synthesized clips on the default audio output device.
package playback

import (
	"context"

	"github.com/book-expert/elevenlabs-tts/internal/settings"
)

// Clip is one complete synthesized audio clip.
type Clip struct {
	Data []byte
	// Format is the configured output format. It is only consulted for raw PCM data,
	// whose sample rate cannot be detected.
	Format settings.OutputFormat
}

// Player plays one clip at a time.
type Player interface {
	// Play blocks until the clip finishes, ctx is cancelled or Stop is called.
	// Stopping is not an error.
	Play(ctx context.Context, clip Clip) error

	// Stop ends the current playback, if any. It never touches network requests.
	Stop()
}
