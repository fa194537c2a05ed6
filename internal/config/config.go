// Package config provides the service-level configuration: where the ElevenLabs API
// lives, how the worker reaches NATS, the optional S3 archive and filesystem paths.
// Per-user synthesis choices live in the settings package instead.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/book-expert/configurator"
	"github.com/book-expert/elevenlabs-tts/internal/elevenlabs"
	"github.com/book-expert/elevenlabs-tts/internal/objectstore"
	"github.com/book-expert/logger"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvAPIKey overrides the configured API key when set.
const EnvAPIKey = "ELEVENLABS_API_KEY"

// Defaults applied to empty fields.
const (
	defaultTextProcessedSubject = "text.processed"
	defaultAudioBucket          = "AUDIO_FILES"
	defaultOutputDir            = "audio"
)

// ElevenLabsConfig holds the remote API settings.
type ElevenLabsConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the HTTP timeout; zero leaves the HTTP stack default.
func (c ElevenLabsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NATSConfig holds the configuration for NATS.
type NATSConfig struct {
	URL                    string `toml:"url"`
	TextProcessedSubject   string `toml:"text_processed_subject"`
	AudioObjectStoreBucket string `toml:"audio_object_store_bucket"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir  string `toml:"base_logs_dir"`
	SettingsFile string `toml:"settings_file"`
	OutputDir    string `toml:"output_dir"`
}

// Config is the root configuration structure.
type Config struct {
	ElevenLabs ElevenLabsConfig     `toml:"elevenlabs"`
	NATS       NATSConfig           `toml:"nats"`
	S3         objectstore.S3Config `toml:"s3"`
	Paths      PathsConfig          `toml:"paths"`
}

// Load loads the configuration through the central configurator.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

// LoadFile reads a TOML configuration file from path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config

	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

// Default returns a configuration with only defaults filled in.
func Default() *Config {
	var cfg Config

	cfg.ApplyDefaults()

	return &cfg
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	if c.ElevenLabs.BaseURL == "" {
		c.ElevenLabs.BaseURL = elevenlabs.DefaultBaseURL
	}

	if c.NATS.TextProcessedSubject == "" {
		c.NATS.TextProcessedSubject = defaultTextProcessedSubject
	}

	if c.NATS.AudioObjectStoreBucket == "" {
		c.NATS.AudioObjectStoreBucket = defaultAudioBucket
	}

	if c.Paths.BaseLogsDir == "" {
		c.Paths.BaseLogsDir = os.TempDir()
	}

	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
}

// LoadEnv reads .env style files into the process environment. Missing files are
// ignored; with no arguments ".env" in the working directory is tried.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load environment file: %w", err)
	}

	return nil
}

// ResolveAPIKey returns the first non-empty key from the environment, the service
// configuration and the stored user settings, in that order.
func (c *Config) ResolveAPIKey(stored string) string {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}

	if c.ElevenLabs.APIKey != "" {
		return c.ElevenLabs.APIKey
	}

	return stored
}
