package playback

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// DefaultFramesPerBuffer is the output buffer size in frames.
const DefaultFramesPerBuffer = 1024

// PortAudioPlayer writes decoded clips to the default PortAudio output device.
// Initialize must be called once before Play and Terminate once at shutdown.
type PortAudioPlayer struct {
	mu              sync.Mutex
	cancel          context.CancelFunc
	generation      uint64
	framesPerBuffer int
}

// NewPortAudioPlayer creates a player using framesPerBuffer frames per write.
func NewPortAudioPlayer(framesPerBuffer int) *PortAudioPlayer {
	if framesPerBuffer <= 0 {
		framesPerBuffer = DefaultFramesPerBuffer
	}

	return &PortAudioPlayer{
		mu:              sync.Mutex{},
		cancel:          nil,
		generation:      0,
		framesPerBuffer: framesPerBuffer,
	}
}

// Initialize starts the PortAudio library.
func (p *PortAudioPlayer) Initialize() error {
	err := portaudio.Initialize()
	if err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	return nil
}

// Terminate releases the PortAudio library.
func (p *PortAudioPlayer) Terminate() error {
	p.Stop()

	err := portaudio.Terminate()
	if err != nil {
		return fmt.Errorf("failed to terminate portaudio: %w", err)
	}

	return nil
}

// Play decodes clip and plays it, replacing any playback already in progress.
func (p *PortAudioPlayer) Play(ctx context.Context, clip Clip) error {
	pcm, err := Decode(clip)
	if err != nil {
		return err
	}

	playCtx, generation := p.begin(ctx)
	defer p.finish(generation)

	buffer := make([]int16, p.framesPerBuffer*pcm.Channels)

	stream, err := portaudio.OpenDefaultStream(
		0,
		pcm.Channels,
		float64(pcm.SampleRate),
		p.framesPerBuffer,
		buffer,
	)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	err = stream.Start()
	if err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for offset := 0; offset < len(pcm.Samples); offset += len(buffer) {
		select {
		case <-playCtx.Done():
			// Stop() cancels only playCtx; the caller's ctx reports its own error.
			return ctx.Err()
		default:
		}

		copied := copy(buffer, pcm.Samples[offset:])
		clear(buffer[copied:])

		err = stream.Write()
		if err != nil {
			return fmt.Errorf("failed to write to output stream: %w", err)
		}
	}

	return nil
}

// Stop ends the current playback. It is safe to call when nothing is playing.
func (p *PortAudioPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *PortAudioPlayer) begin(ctx context.Context) (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	playCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.generation++

	return playCtx, p.generation
}

func (p *PortAudioPlayer) finish(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.generation == generation && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
