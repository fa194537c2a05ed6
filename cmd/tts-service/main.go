// main package for the tts-service
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/book-expert/elevenlabs-tts/internal/config"
	"github.com/book-expert/elevenlabs-tts/internal/elevenlabs"
	"github.com/book-expert/elevenlabs-tts/internal/objectstore"
	"github.com/book-expert/elevenlabs-tts/internal/settings"
	"github.com/book-expert/elevenlabs-tts/internal/worker"
	"github.com/book-expert/logger"
	"github.com/nats-io/nats.go"
)

var errNATSURLEmpty = errors.New("nats url is not configured")

func setupLogger(logPath string) (*logger.Logger, error) {
	log, err := logger.New(logPath, "tts-service.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func loadSettings(cfg *config.Config, log *logger.Logger) settings.Configuration {
	store := settings.NewStore(cfg.Paths.SettingsFile)

	if cfg.Paths.SettingsFile == "" {
		defaultStore, err := settings.NewDefaultStore()
		if err != nil {
			log.Warn("No settings location available, using defaults: %v", err)

			return settings.Default()
		}

		store = defaultStore
	}

	userSettings, err := store.Load()
	if err != nil {
		log.Warn("Using default synthesis settings: %v", err)
	}

	return userSettings
}

func run() error {
	// 1. Create a temporary logger for the bootstrap process
	bootstrapLog, err := setupLogger(os.TempDir())
	if err != nil {
		// If bootstrap logger fails, we can only print to stderr
		fmt.Fprintf(os.Stderr, "FATAL: Failed to create bootstrap logger: %v\n", err)

		return err
	}

	envErr := config.LoadEnv()
	if envErr != nil {
		bootstrapLog.Warn("Ignoring environment file: %v", envErr)
	}

	// 2. Load configuration using the central configurator
	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.NATS.URL == "" {
		bootstrapLog.Error("NATS url missing from configuration")

		return errNATSURLEmpty
	}

	// 3. Initialize the final logger based on the loaded configuration
	finalLog, err := setupLogger(cfg.Paths.BaseLogsDir)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return fmt.Errorf("failed to create final logger: %w", err)
	}

	defer func() {
		closeErr := finalLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing final logger: %v\n", closeErr)
		}
	}()

	// 4. Wire the client, the archive bucket and the worker
	userSettings := loadSettings(cfg, finalLog)
	apiKey := cfg.ResolveAPIKey(userSettings.APIKey)
	client := elevenlabs.NewHTTPClient(cfg.ElevenLabs.BaseURL, apiKey, cfg.ElevenLabs.Timeout())

	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer natsConnection.Close()

	jetstreamContext, err := natsConnection.JetStream()
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	store, err := objectstore.New(jetstreamContext, cfg.NATS.AudioObjectStoreBucket)
	if err != nil {
		return fmt.Errorf("failed to open audio bucket: %w", err)
	}

	natsWorker, err := worker.NewNatsWorker(
		natsConnection,
		cfg.NATS.TextProcessedSubject,
		store,
		client,
		userSettings,
		finalLog,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	finalLog.System("TTS-Service initialized against %s. Listening on subject: %s",
		client.BaseURL(), cfg.NATS.TextProcessedSubject)

	return natsWorker.Run(ctx)
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
