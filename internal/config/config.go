// Package config loads the optional user configuration file. A missing or
// broken file yields the defaults; configuration problems never keep the
// app from starting.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vess/tock/internal/db"
)

// Config holds user-tunable settings
type Config struct {
	DataDir                 string `yaml:"data_dir"`
	Theme                   string `yaml:"theme"`
	DefaultCountdownMinutes int    `yaml:"default_countdown_minutes"`
	Notifications           bool   `yaml:"notifications"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:                 db.DefaultDataDir(),
		Theme:                   "slate",
		DefaultCountdownMinutes: 25,
		Notifications:           true,
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tock.yaml"
	}
	return filepath.Join(home, ".config", "tock", "config.yaml")
}

// Load reads the config file at path, merging it over the defaults. Any
// read or parse failure falls back to the defaults.
func Load(path string) *Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = db.DefaultDataDir()
	}
	if cfg.DefaultCountdownMinutes < 1 || cfg.DefaultCountdownMinutes > 1440 {
		cfg.DefaultCountdownMinutes = 25
	}
	return cfg
}

// DBPath returns the database file path under the configured data dir
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "tock.db")
}
