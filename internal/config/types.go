package config

import (
	"fmt"

	"jarvis/internal/resolver"
)

// DefaultDatabasePath is where the registry lives unless the config file or
// the --database flag says otherwise.
const DefaultDatabasePath = "/usr/local/etc/utils.json"

// DefaultWidth is the column at which text output wraps.
const DefaultWidth = 79

// Config is the top-level structure loaded from the config file.
// - DatabasePath: JSON registry to read and write.
// - Cutoff: minimum similarity (0..1) for a misspelled name to still match.
// - Width: wrap column for text output; 0 means use the terminal width.
type Config struct {
	DatabasePath string  `yaml:"database_path" toml:"database_path"`
	Cutoff       float64 `yaml:"cutoff" toml:"cutoff"`
	Width        int     `yaml:"width" toml:"width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DatabasePath: DefaultDatabasePath,
		Cutoff:       resolver.DefaultCutoff,
		Width:        DefaultWidth,
	}
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.Cutoff < 0 || c.Cutoff > 1 {
		return fmt.Errorf("cutoff must be between 0 and 1, got %v", c.Cutoff)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	return nil
}
