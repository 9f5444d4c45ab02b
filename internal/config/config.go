// Package config loads the rtkmine configuration from ~/.rtkmine/config.yaml.
// A missing file yields defaults; flags override loaded values at the CLI
// layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the rtkmine configuration.
type Config struct {
	Sessions    SessionsConfig    `yaml:"sessions"`
	Discover    DiscoverConfig    `yaml:"discover"`
	Corrections CorrectionsConfig `yaml:"corrections"`
}

// SessionsConfig holds transcript location settings.
type SessionsConfig struct {
	Root string `yaml:"root"` // transcript root (empty = ~/.claude/projects)
}

// DiscoverConfig holds defaults for the discover command.
type DiscoverConfig struct {
	Days  int `yaml:"days"`  // default trailing window in days (0 = unbounded)
	Limit int `yaml:"limit"` // max rows per report table
}

// CorrectionsConfig holds defaults for the corrections command.
type CorrectionsConfig struct {
	MinConfidence  float64 `yaml:"min_confidence"`  // rule confidence threshold
	MinOccurrences int     `yaml:"min_occurrences"` // rule occurrence threshold
	Window         int     `yaml:"window"`          // detector look-ahead window
	RulesPath      string  `yaml:"rules_path"`      // rule db path (empty = ~/.rtkmine/rules.db)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Discover: DiscoverConfig{
			Days:  30,
			Limit: 15,
		},
		Corrections: CorrectionsConfig{
			MinConfidence:  0.6,
			MinOccurrences: 1,
			Window:         3,
		},
	}
}

// Path returns the config file location (~/.rtkmine/config.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".rtkmine", "config.yaml"), nil
}

// Load reads the config file, overlaying it onto defaults. A missing file is
// not an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyFloors()
	return cfg, nil
}

// applyFloors clamps nonsense values back to usable ones.
func (c *Config) applyFloors() {
	if c.Discover.Limit <= 0 {
		c.Discover.Limit = Default().Discover.Limit
	}
	if c.Corrections.Window <= 0 {
		c.Corrections.Window = Default().Corrections.Window
	}
	if c.Corrections.MinConfidence < 0 {
		c.Corrections.MinConfidence = 0
	}
	if c.Corrections.MinConfidence > 1 {
		c.Corrections.MinConfidence = 1
	}
	if c.Corrections.MinOccurrences < 1 {
		c.Corrections.MinOccurrences = 1
	}
}
