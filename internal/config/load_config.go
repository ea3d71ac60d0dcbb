package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"jarvis/internal/logger"
)

// DefaultPath returns the config file looked up when --config is not given:
// $XDG_CONFIG_HOME/jarvis/config.yaml (or the OS equivalent).
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "jarvis", "config.yaml")
	}
	return filepath.Join(".", "config.yaml")
}

// LoadConfig reads the config file at path on top of the defaults.
//
// An empty path means DefaultPath, and a missing default file simply yields
// the defaults. A file that was asked for explicitly must exist. The format
// follows the extension: .toml is TOML, anything else is YAML.
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Debug("[DEBUG] No config file at %s, using defaults\n", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger.Debug("[DEBUG] Loaded config from %s: %+v\n", path, cfg)
	return cfg, nil
}
