package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Settings location and permissions.
const (
	appDirName     = "ElevenLabsTTS"
	configFileName = "config.json"

	filePermissions = 0o600
	dirPermissions  = 0o750
)

// Persistence operations reported in PersistenceError.
const (
	OpLoad = "load"
	OpSave = "save"
)

// ErrPersistence is matched by every PersistenceError.
var ErrPersistence = errors.New("settings persistence failed")

// PersistenceError reports a settings read or write failure.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s settings at %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// Store reads and writes the configuration document at a fixed path.
// It assumes a single writer; external modification is not detected.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}

	return filepath.Join(dir, appDirName, configFileName), nil
}

// NewDefaultStore creates a store at DefaultPath.
func NewDefaultStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}

	return NewStore(path), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored configuration. A missing file yields the defaults with no error.
// A read or parse failure yields the defaults together with a *PersistenceError.
// Fields absent from the document keep their default values.
func (s *Store) Load() (Configuration, error) {
	cfg := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return Default(), &PersistenceError{Op: OpLoad, Path: s.path, Err: err}
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return Default(), &PersistenceError{Op: OpLoad, Path: s.path, Err: err}
	}

	return cfg, nil
}

// Save writes cfg as indented JSON, creating parent directories as needed.
func (s *Store) Save(cfg Configuration) error {
	dirErr := os.MkdirAll(filepath.Dir(s.path), dirPermissions)
	if dirErr != nil {
		return &PersistenceError{Op: OpSave, Path: s.path, Err: dirErr}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &PersistenceError{Op: OpSave, Path: s.path, Err: err}
	}

	writeErr := os.WriteFile(s.path, data, filePermissions)
	if writeErr != nil {
		return &PersistenceError{Op: OpSave, Path: s.path, Err: writeErr}
	}

	return nil
}
