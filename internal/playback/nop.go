package playback

import "context"

// NopPlayer discards clips. It backs sessions that only save audio.
type NopPlayer struct{}

// Play validates that the clip decodes and returns immediately.
func (NopPlayer) Play(_ context.Context, clip Clip) error {
	_, err := Decode(clip)

	return err
}

// Stop does nothing.
func (NopPlayer) Stop() {}
