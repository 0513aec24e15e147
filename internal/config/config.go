// Package config loads the todo configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fentz26/todo/internal/store"
	"github.com/fentz26/todo/internal/todo"
	"gopkg.in/yaml.v3"
)

// Config holds todo configuration.
type Config struct {
	// Storage selects where the task collection is persisted.
	Storage Storage `yaml:"storage"`
	// UI tunes the terminal interface.
	UI UI `yaml:"ui"`
	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `yaml:"log_file"`
}

// Storage describes the slot backend.
type Storage struct {
	// Backend is one of sqlite, file or memory.
	Backend string `yaml:"backend"`
	// Path is the database file (sqlite) or slot directory (file).
	// Empty selects a default under ~/.todo.
	Path string `yaml:"path"`
	// Key names the slot holding the task collection.
	Key string `yaml:"key"`
}

// UI holds terminal interface settings.
type UI struct {
	// ConfirmDelete asks for a yes/no answer before deleting a task.
	ConfirmDelete bool `yaml:"confirm_delete"`
	// AltScreen runs the TUI in the terminal's alternate screen.
	AltScreen bool `yaml:"alt_screen"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: Storage{
			Backend: store.BackendSQLite,
			Key:     todo.DefaultKey,
		},
		UI: UI{
			ConfirmDelete: true,
			AltScreen:     true,
		},
		LogFile: filepath.Join(Dir(), "todo.log"),
	}
}

// Dir returns ~/.todo, or .todo when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todo"
	}
	return filepath.Join(home, ".todo")
}

// DefaultPath returns ~/.todo/config.yaml.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file, creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendSQLite, store.BackendFile, store.BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q, must be: sqlite, file, or memory", c.Storage.Backend)
	}

	if err := store.ValidateKey(c.Storage.Key); err != nil {
		return fmt.Errorf("storage key: %w", err)
	}

	return nil
}

// StoragePath resolves the backend location, expanding ~ and applying
// the per-backend default when Path is empty.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return ExpandHome(c.Storage.Path)
	}
	if c.Storage.Backend == store.BackendFile {
		return filepath.Join(Dir(), "slots")
	}
	return filepath.Join(Dir(), "todo.db")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
