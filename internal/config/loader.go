package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "sandboxagent"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadError is returned when a config file exists but cannot be used.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Cause)
}
func (e *LoadError) Unwrap() error { return e.Cause }

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Path returns the dotfile location, or "" when the home directory is unknown.
func (l *Loader) Path() string {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
}

// Load reads configuration from ~/.config/sandboxagent/config.json
// and merges it with defaults. Dotfile values override defaults.
// Returns default config if dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
func (l *Loader) Load() (*Config, error) {
	configPath := l.Path()
	if configPath == "" {
		return DefaultConfig(), nil
	}
	return l.LoadFile(configPath, false)
}

// LoadFile reads configuration from an explicit path.
// When required is false a missing file yields the defaults.
//
// NOTE: JSON keys are unmarshalled directly over the default configuration,
// so explicit zero values (e.g., 0, false, "") in the file override defaults.
func (l *Loader) LoadFile(configPath string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, &LoadError{Path: configPath, Cause: err}
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Path: configPath, Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: configPath, Cause: err}
	}

	return cfg, nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
