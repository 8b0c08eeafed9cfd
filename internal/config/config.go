// Package config loads the keyremap settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/TanaroSch/keyremap/internal/logging"
)

const (
	// FileName is the settings file name inside the config directory.
	FileName = "config.toml"
	// DefaultStoreFile is the mapping store used when store_path is empty.
	DefaultStoreFile = "data.json"

	BackendAuto = "auto"
	BackendNone = "none"
)

// Config holds the application settings.
type Config struct {
	Verbose          bool   `toml:"verbose"`
	StorePath        string `toml:"store_path"`
	UseNotifications bool   `toml:"use_notifications"`
	WatchStore       bool   `toml:"watch_store"`
	Backend          string `toml:"backend"`

	// Non-TOML fields (runtime state)
	configPath string
}

// Default returns the settings written on first run.
func Default() *Config {
	return &Config{
		StorePath:        DefaultStoreFile,
		UseNotifications: true,
		WatchStore:       true,
		Backend:          BackendAuto,
	}
}

// DefaultPath returns <user config dir>/keyremap/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "keyremap", FileName), nil
}

// GetConfigPath returns the path the settings were loaded from.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// ResolveStorePath returns the store path, resolved against the config
// directory when relative.
func (c *Config) ResolveStorePath() string {
	p := c.StorePath
	if p == "" {
		p = DefaultStoreFile
	}
	if filepath.IsAbs(p) || c.configPath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.configPath), p)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "", BackendAuto, BackendNone:
		return nil
	default:
		return fmt.Errorf("invalid backend %q (want %q or %q)", c.Backend, BackendAuto, BackendNone)
	}
}

// Load reads the settings file, creating a default one if it does not exist.
func Load(configPath string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := Default()
	meta, err := toml.DecodeFile(configPath, cfg)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
		}
		logger.Info("config file not found, creating default", "path", configPath)
		if createErr := CreateDefaultConfig(configPath, logger); createErr != nil {
			return nil, fmt.Errorf("config file not found and failed to create default '%s': %w", configPath, createErr)
		}
		cfg = Default()
	} else if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warn("unknown config keys ignored", "path", configPath, "keys", fmt.Sprint(undecoded))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file '%s': %w", configPath, err)
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendAuto
	}
	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.configPath = configPath
	return cfg, nil
}

// CreateDefaultConfig writes the default settings unless the file exists.
func CreateDefaultConfig(configPath string, logger *slog.Logger) error {
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error checking config path '%s': %w", configPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write default config file '%s': %w", configPath, err)
	}
	if logger != nil {
		logger.Info("default configuration file created", "path", configPath)
	}
	return nil
}
