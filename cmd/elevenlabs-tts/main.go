// main package for the elevenlabs-tts command-line client
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/book-expert/elevenlabs-tts/internal/config"
	"github.com/book-expert/elevenlabs-tts/internal/core"
	"github.com/book-expert/elevenlabs-tts/internal/elevenlabs"
	"github.com/book-expert/elevenlabs-tts/internal/objectstore"
	"github.com/book-expert/elevenlabs-tts/internal/playback"
	"github.com/book-expert/elevenlabs-tts/internal/settings"
	"github.com/book-expert/elevenlabs-tts/internal/studio"
	"github.com/book-expert/logger"
)

// Flag names.
const (
	flagVoices       = "voices"
	flagText         = "text"
	flagPlay         = "play"
	flagSave         = "save"
	flagPreview      = "preview"
	flagVoice        = "voice"
	flagModel        = "model"
	flagLanguage     = "language"
	flagFormat       = "format"
	flagStability    = "stability"
	flagSpeed        = "speed"
	flagAPIKey       = "api-key"
	flagSettings     = "settings"
	flagConfig       = "config"
	flagSaveSettings = "save-settings"
)

// Flag descriptions.
const (
	flagVoicesDesc       = "List the voices available to the account and exit"
	flagTextDesc         = "Text to convert to speech"
	flagPlayDesc         = "Play the synthesized clip"
	flagSaveDesc         = "Directory to save the synthesized clip into"
	flagPreviewDesc      = "Voice id to preview with a short sample sentence"
	flagVoiceDesc        = "Voice id to synthesize with"
	flagModelDesc        = "Model id (eleven_multilingual_v2, eleven_flash_v2_5, eleven_turbo_v2_5)"
	flagLanguageDesc     = "Language name, e.g. English or French"
	flagFormatDesc       = "Output format, e.g. mp3_44100_192 or pcm_24000"
	flagStabilityDesc    = "Stability percentage 0-100"
	flagSpeedDesc        = "Speed percentage 0-100"
	flagAPIKeyDesc       = "ElevenLabs API key"
	flagSettingsDesc     = "Path to the JSON settings file"
	flagConfigDesc       = "Path to a TOML service configuration file"
	flagSaveSettingsDesc = "Persist the effective settings after applying flags"
)

// Error and log messages.
const (
	errNoAction          = "one of -voices, -text or -preview must be provided"
	errTextRequired      = "-play and -save require -text"
	errUnsupportedLang   = "unsupported language"
	errFailedToLoadCfg   = "failed to load configuration: %w"
	errFailedToInitLog   = "failed to initialize logger: %w"
	errFailedToOpenStore = "failed to open settings store: %w"
	logSettingsFallback  = "Using default settings: %v"
	logClientReady       = "ElevenLabs client ready (%s)"
	logArchiveEnabled    = "Archiving saved clips to bucket %s"
)

const (
	logFileName = "elevenlabs-tts.log"
	unsetInt    = -1
)

var (
	errMissingAction       = errors.New(errNoAction)
	errTextMissing         = errors.New(errTextRequired)
	errUnsupportedLanguage = errors.New(errUnsupportedLang)
)

// appFlags holds the parsed command-line flag values.
type appFlags struct {
	text         string
	save         string
	preview      string
	voice        string
	model        string
	language     string
	format       string
	apiKey       string
	settings     string
	config       string
	stability    int
	speed        int
	voices       bool
	play         bool
	saveSettings bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout)

	stop()

	if err != nil {
		// A logger might not be initialized yet, so use the standard log package.
		log.Fatalf("Error: %v", err)
	}
}

// run is the application entry point, returning an error on failure.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	err = validateFlags(flags)
	if err != nil {
		return err
	}

	envErr := config.LoadEnv()
	if envErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", envErr)
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return fmt.Errorf(errFailedToLoadCfg, err)
	}

	appLog, err := logger.New(cfg.Paths.BaseLogsDir, logFileName)
	if err != nil {
		return fmt.Errorf(errFailedToInitLog, err)
	}
	defer appLog.Close()

	store, err := openStore(flags.settings, cfg.Paths.SettingsFile)
	if err != nil {
		return fmt.Errorf(errFailedToOpenStore, err)
	}

	userSettings, loadErr := store.Load()
	if loadErr != nil {
		appLog.Warn(logSettingsFallback, loadErr)
	}

	err = applyOverrides(&userSettings, flags)
	if err != nil {
		return err
	}

	apiKey := flags.apiKey
	if apiKey == "" {
		apiKey = cfg.ResolveAPIKey(userSettings.APIKey)
	}

	client := elevenlabs.NewHTTPClient(cfg.ElevenLabs.BaseURL, apiKey, cfg.ElevenLabs.Timeout())
	appLog.Info(logClientReady, client.BaseURL())

	player, cleanup, err := newPlayer(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	archive, err := newArchive(ctx, cfg, appLog)
	if err != nil {
		return err
	}

	session := studio.New(userSettings, client, store, player, archive, appLog)

	return execute(ctx, session, flags, stdout)
}

// parseFlags defines and parses command-line flags, returning them in a struct.
func parseFlags(args []string) (appFlags, error) {
	var flags appFlags

	flagSet := flag.NewFlagSet("elevenlabs-tts", flag.ContinueOnError)
	flagSet.BoolVar(&flags.voices, flagVoices, false, flagVoicesDesc)
	flagSet.StringVar(&flags.text, flagText, "", flagTextDesc)
	flagSet.BoolVar(&flags.play, flagPlay, false, flagPlayDesc)
	flagSet.StringVar(&flags.save, flagSave, "", flagSaveDesc)
	flagSet.StringVar(&flags.preview, flagPreview, "", flagPreviewDesc)
	flagSet.StringVar(&flags.voice, flagVoice, "", flagVoiceDesc)
	flagSet.StringVar(&flags.model, flagModel, "", flagModelDesc)
	flagSet.StringVar(&flags.language, flagLanguage, "", flagLanguageDesc)
	flagSet.StringVar(&flags.format, flagFormat, "", flagFormatDesc)
	flagSet.IntVar(&flags.stability, flagStability, unsetInt, flagStabilityDesc)
	flagSet.IntVar(&flags.speed, flagSpeed, unsetInt, flagSpeedDesc)
	flagSet.StringVar(&flags.apiKey, flagAPIKey, "", flagAPIKeyDesc)
	flagSet.StringVar(&flags.settings, flagSettings, "", flagSettingsDesc)
	flagSet.StringVar(&flags.config, flagConfig, "", flagConfigDesc)
	flagSet.BoolVar(&flags.saveSettings, flagSaveSettings, false, flagSaveSettingsDesc)

	err := flagSet.Parse(args)
	if err != nil {
		return appFlags{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	return flags, nil
}

func validateFlags(flags appFlags) error {
	if !flags.voices && flags.text == "" && flags.preview == "" && !flags.saveSettings {
		return errMissingAction
	}

	if (flags.play || flags.save != "") && flags.text == "" {
		return errTextMissing
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadFile(path)
}

func openStore(flagPath, configPath string) (*settings.Store, error) {
	switch {
	case flagPath != "":
		return settings.NewStore(flagPath), nil
	case configPath != "":
		return settings.NewStore(configPath), nil
	default:
		return settings.NewDefaultStore()
	}
}

// applyOverrides copies explicitly set flags onto cfg and validates the result.
func applyOverrides(cfg *settings.Configuration, flags appFlags) error {
	if flags.voice != "" && flags.voice != cfg.SelectedVoiceID {
		cfg.SelectedVoiceID = flags.voice
		cfg.SelectedVoiceName = ""
	}

	if flags.model != "" {
		cfg.SelectedModel = flags.model
	}

	if flags.language != "" {
		if !settings.IsSupportedLanguage(flags.language) {
			return fmt.Errorf("%w: %s", errUnsupportedLanguage, flags.language)
		}

		cfg.Language = flags.language
	}

	if flags.format != "" {
		cfg.OutputFormat = settings.OutputFormat(flags.format)
	}

	if flags.stability != unsetInt {
		cfg.Stability = flags.stability
	}

	if flags.speed != unsetInt {
		cfg.Speed = flags.speed
	}

	if flags.apiKey != "" {
		cfg.APIKey = flags.apiKey
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	return nil
}

func newPlayer(flags appFlags) (playback.Player, func(), error) {
	if !flags.play && flags.preview == "" {
		return playback.NopPlayer{}, func() {}, nil
	}

	player := playback.NewPortAudioPlayer(playback.DefaultFramesPerBuffer)

	err := player.Initialize()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		termErr := player.Terminate()
		if termErr != nil {
			fmt.Fprintf(os.Stderr, "error terminating audio: %v\n", termErr)
		}
	}

	return player, cleanup, nil
}

func newArchive(ctx context.Context, cfg *config.Config, appLog *logger.Logger) (core.ObjectStore, error) {
	if !cfg.S3.Enabled() {
		return nil, nil
	}

	archive, err := objectstore.NewMinio(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	appLog.Info(logArchiveEnabled, cfg.S3.Bucket)

	return archive, nil
}

// execute dispatches to the requested actions in a fixed order.
func execute(ctx context.Context, session *studio.Session, flags appFlags, stdout io.Writer) error {
	if flags.voices || flags.voice != "" {
		err := loadVoices(ctx, session, flags, stdout)
		if err != nil {
			return err
		}
	}

	if flags.saveSettings {
		err := session.UpdateConfiguration(session.Configuration())
		if err != nil {
			return err
		}
	}

	if flags.preview != "" {
		err := session.Preview(ctx, flags.preview)
		if err != nil {
			return err
		}
	}

	if flags.text == "" {
		return nil
	}

	return speak(ctx, session, flags, stdout)
}

func loadVoices(ctx context.Context, session *studio.Session, flags appFlags, stdout io.Writer) error {
	voices, err := session.LoadVoices(ctx)
	if err != nil {
		return err
	}

	if flags.voices {
		for _, listed := range voices {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", listed.ID, listed.Name, listed.Category)
		}
	}

	if flags.voice == "" {
		return nil
	}

	_, err = session.SelectVoice(flags.voice)

	return err
}

func speak(ctx context.Context, session *studio.Session, flags appFlags, stdout io.Writer) error {
	_, err := session.Speak(ctx, flags.text)
	if err != nil {
		return err
	}

	if flags.play {
		err = session.Play(ctx)
		if err != nil {
			return err
		}
	}

	if flags.save == "" {
		return nil
	}

	path, err := session.SaveClip(ctx, flags.save)
	if path != "" {
		fmt.Fprintf(stdout, "Saved: %s\n", path)
	}

	return err
}
