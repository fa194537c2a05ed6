// Package studio sequences user actions (load voices, speak, preview, play, save)
// over the TTS client, the settings store and the audio player.
package studio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/book-expert/elevenlabs-tts/internal/core"
	"github.com/book-expert/elevenlabs-tts/internal/playback"
	"github.com/book-expert/elevenlabs-tts/internal/settings"
	"github.com/book-expert/elevenlabs-tts/internal/voice"
	"github.com/book-expert/logger"
	"github.com/dustin/go-humanize"
)

// PreviewText is spoken when auditioning a voice.
const PreviewText = "Hello! This is a preview of how I sound."

const (
	filePermissions = 0o600
	dirPermissions  = 0o750
)

var (
	// ErrBusy is returned while another network action is outstanding.
	ErrBusy = errors.New("another request is already in progress")
	// ErrNoClip is returned when there is nothing to play or save.
	ErrNoClip = errors.New("no audio data available")
	// ErrUnknownVoice is returned when selecting a voice that was not listed.
	ErrUnknownVoice = errors.New("voice is not in the loaded listing")
	// ErrOutputDirEmpty is returned when saving without a target directory.
	ErrOutputDirEmpty = errors.New("output directory cannot be empty")
)

// Session holds the active configuration and the most recent clip for one user.
// Network actions are admitted one at a time; the client itself does not serialise.
type Session struct {
	client  core.TTSClient
	store   core.SettingsStore
	player  playback.Player
	archive core.ObjectStore
	log     *logger.Logger

	busy atomic.Bool

	mu     sync.Mutex
	cfg    settings.Configuration
	voices []voice.Voice
	clip   []byte
}

// New creates a session. archive may be nil when clips are only written to disk.
func New(
	cfg settings.Configuration,
	client core.TTSClient,
	store core.SettingsStore,
	player playback.Player,
	archive core.ObjectStore,
	log *logger.Logger,
) *Session {
	return &Session{
		client:  client,
		store:   store,
		player:  player,
		archive: archive,
		log:     log,
		cfg:     cfg,
	}
}

// Configuration returns a copy of the active configuration.
func (s *Session) Configuration() settings.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cfg
}

// UpdateConfiguration validates cfg, makes it active and persists it.
// The new configuration stays active even when persisting fails.
func (s *Session) UpdateConfiguration(cfg settings.Configuration) error {
	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	return s.persist(cfg)
}

// LoadVoices fetches the voice listing and remembers it for SelectVoice.
func (s *Session) LoadVoices(ctx context.Context) ([]voice.Voice, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	voices, err := s.client.ListVoices(ctx)
	if err != nil {
		s.log.Error("Failed to load voices: %v", err)

		return nil, fmt.Errorf("failed to load voices: %w", err)
	}

	s.mu.Lock()
	s.voices = voices
	s.mu.Unlock()

	s.log.Info("Loaded %d voices", len(voices))

	return voices, nil
}

// Voices returns the last loaded listing.
func (s *Session) Voices() []voice.Voice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]voice.Voice(nil), s.voices...)
}

// SelectVoice makes a listed voice the active one. It does not persist.
func (s *Session) SelectVoice(id string) (voice.Voice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected, ok := voice.Find(s.voices, id)
	if !ok {
		return voice.Voice{}, fmt.Errorf("%w: %s", ErrUnknownVoice, id)
	}

	s.cfg.SelectedVoiceID = selected.ID
	s.cfg.SelectedVoiceName = selected.Name

	return selected, nil
}

// Speak stops any playback, synthesizes text with the active configuration and keeps
// the result as the current clip. On failure the previous clip is left untouched.
func (s *Session) Speak(ctx context.Context, text string) ([]byte, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	s.player.Stop()

	cfg := s.Configuration()
	request := cfg.SynthesisRequest(text)

	audio, err := s.client.Synthesize(ctx, request)
	if err != nil {
		s.log.Error("Failed to convert text to speech: %v", err)

		return nil, fmt.Errorf("failed to convert text to speech: %w", err)
	}

	s.mu.Lock()
	s.clip = audio
	s.mu.Unlock()

	s.log.Info("Synthesized %s with voice %s", humanize.Bytes(uint64(len(audio))), request.VoiceID)

	return audio, nil
}

// Play plays the current clip and blocks until it ends or is stopped.
func (s *Session) Play(ctx context.Context) error {
	clip, ok := s.Clip()
	if !ok {
		return ErrNoClip
	}

	return s.play(ctx, clip)
}

// Preview synthesizes PreviewText with voiceID and plays it. The current clip is kept.
func (s *Session) Preview(ctx context.Context, voiceID string) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}

	s.player.Stop()

	cfg := s.Configuration()
	cfg.SelectedVoiceID = voiceID

	audio, err := s.client.Synthesize(ctx, cfg.SynthesisRequest(PreviewText))

	release()

	if err != nil {
		s.log.Error("Failed to preview voice %s: %v", voiceID, err)

		return fmt.Errorf("failed to preview voice: %w", err)
	}

	return s.play(ctx, audio)
}

// Stop ends local playback. Outstanding network requests are not affected.
func (s *Session) Stop() {
	s.player.Stop()
}

// Clip returns the current clip.
func (s *Session) Clip() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clip) == 0 {
		return nil, false
	}

	return s.clip, true
}

// SaveClip writes the current clip into dir under the next sequential name, persists
// the advanced counter and, when an archive is configured, uploads the clip too.
// It returns the written path.
func (s *Session) SaveClip(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		return "", ErrOutputDirEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clip) == 0 {
		return "", ErrNoClip
	}

	next := s.cfg
	name := next.NextClipName()
	path := filepath.Join(dir, name)

	err := os.MkdirAll(dir, dirPermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	err = os.WriteFile(path, s.clip, filePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	s.cfg = next
	s.log.Info("Saved %s (%s)", path, humanize.Bytes(uint64(len(s.clip))))

	persistErr := s.persist(next)

	if s.archive != nil {
		uploadErr := s.archive.Upload(ctx, name, s.clip)
		if uploadErr != nil {
			s.log.Error("Failed to archive %s: %v", name, uploadErr)

			return path, errors.Join(persistErr, fmt.Errorf("failed to archive clip: %w", uploadErr))
		}
	}

	return path, persistErr
}

func (s *Session) play(ctx context.Context, audio []byte) error {
	cfg := s.Configuration()

	err := s.player.Play(ctx, playback.Clip{Data: audio, Format: cfg.OutputFormat})
	if err != nil {
		s.log.Error("Playback failed: %v", err)

		return fmt.Errorf("playback failed: %w", err)
	}

	return nil
}

func (s *Session) persist(cfg settings.Configuration) error {
	err := s.store.Save(cfg)
	if err != nil {
		s.log.Error("Failed to save configuration: %v", err)

		return fmt.Errorf("failed to save configuration: %w", err)
	}

	return nil
}

// acquire admits one network action at a time.
func (s *Session) acquire() (func(), error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	return func() { s.busy.Store(false) }, nil
}
