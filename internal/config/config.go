// Package config loads endpoint and storage settings from a TOML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultBaseURL = "http://localhost:1234/v1"
	DefaultModel   = "local-model"
)

// Config holds everything the app needs at startup.
type Config struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	DataDir string `toml:"data_dir"`
}

// Path returns the config file location, ~/.config/chatapp/config.toml on
// most systems.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, "chatapp", "config.toml"), nil
}

// Load reads the config file if present, applies defaults and environment
// overrides (CHATAPP_BASE_URL, CHATAPP_API_KEY, CHATAPP_MODEL). A missing
// file is not an error.
func Load() (Config, error) {
	var cfg Config

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if v := os.Getenv("CHATAPP_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CHATAPP_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CHATAPP_MODEL"); v != "" {
		cfg.Model = v
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKey == "" {
		cfg.APIKey = "not-needed"
	}
	return cfg, nil
}
