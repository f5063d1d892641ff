// Package config loads optional tool-level defaults from a TOML file.
// Command-line flags override file values; file values override the
// built-in defaults.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config carries tool-level defaults.
type Config struct {
	// Chunks is the default number of chunks a file is split into.
	Chunks int `toml:"chunks"`

	// IBytes is a JSON document describing the interesting byte groups,
	// e.g. {"0's": [0], "Exploit": [44, 144]}. Empty means the built-in
	// default groups; "{}" disables occurrence tracking.
	IBytes string `toml:"ibytes"`

	// Store is a blob bucket URL results are uploaded to when set.
	Store string `toml:"store"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chunks: 750,
	}
}

// Load reads a TOML configuration file. Fields not present keep their
// built-in defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Chunks < 1 {
		return fmt.Errorf("chunks must be at least 1, got %d", c.Chunks)
	}
	return nil
}
