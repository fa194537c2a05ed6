// Package config_test tests the configuration loading for the elevenlabs-tts service.
package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/book-expert/elevenlabs-tts/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[elevenlabs]
base_url = "http://127.0.0.1:9999"
api_key = "from-file"
timeout_seconds = 30

[nats]
url = "nats://127.0.0.1:4222"
text_processed_subject = "text.ready"
audio_object_store_bucket = "CLIPS"

[s3]
endpoint = "minio.local:9000"
access_key = "access"
secret_key = "secret"
bucket = "clips"
region = "eu-west-1"
use_ssl = true

[paths]
base_logs_dir = "/var/log/tts"
settings_file = "/etc/tts/config.json"
output_dir = "/srv/audio"
`

func TestConfig_Unmarshal(t *testing.T) {
	t.Parallel()

	var cfg config.Config

	err := toml.Unmarshal([]byte(sampleTOML), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.ElevenLabs.BaseURL)
	assert.Equal(t, "from-file", cfg.ElevenLabs.APIKey)
	assert.Equal(t, 30*time.Second, cfg.ElevenLabs.Timeout())
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "text.ready", cfg.NATS.TextProcessedSubject)
	assert.Equal(t, "CLIPS", cfg.NATS.AudioObjectStoreBucket)
	assert.Equal(t, "minio.local:9000", cfg.S3.Endpoint)
	assert.Equal(t, "clips", cfg.S3.Bucket)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, "/var/log/tts", cfg.Paths.BaseLogsDir)
	assert.Equal(t, "/etc/tts/config.json", cfg.Paths.SettingsFile)
	assert.Equal(t, "/srv/audio", cfg.Paths.OutputDir)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "project.toml")
	require.NoError(t, os.WriteFile(path, []byte("[nats]\nurl = \"nats://x:4222\"\n"), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "nats://x:4222", cfg.NATS.URL)
	assert.Equal(t, "https://api.elevenlabs.io", cfg.ElevenLabs.BaseURL)
	assert.Equal(t, "text.processed", cfg.NATS.TextProcessedSubject)
	assert.Equal(t, "AUDIO_FILES", cfg.NATS.AudioObjectStoreBucket)
	assert.Equal(t, "audio", cfg.Paths.OutputDir)
	assert.Equal(t, time.Duration(0), cfg.ElevenLabs.Timeout())
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[nats\nurl="), 0o600))

	_, err = config.LoadFile(bad)
	require.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	cfg := config.Default()

	t.Setenv(config.EnvAPIKey, "")
	assert.Equal(t, "stored", cfg.ResolveAPIKey("stored"))

	cfg.ElevenLabs.APIKey = "configured"
	assert.Equal(t, "configured", cfg.ResolveAPIKey("stored"))

	t.Setenv(config.EnvAPIKey, "from-env")
	assert.Equal(t, "from-env", cfg.ResolveAPIKey("stored"))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(config.EnvAPIKey+"=dotenv-key\n"), 0o600))

	t.Setenv(config.EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(config.EnvAPIKey))

	require.NoError(t, config.LoadEnv(envFile))
	assert.Equal(t, "dotenv-key", os.Getenv(config.EnvAPIKey))

	require.NoError(t, config.LoadEnv(filepath.Join(dir, "absent.env")))
}
