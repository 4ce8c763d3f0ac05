// Package config loads editor settings from TOML or YAML files with an
// environment variable overlay.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings holds editor configuration.
type Settings struct {
	// InitialMode is the mode the session starts in ("edit" or "play").
	InitialMode string `toml:"initial_mode" yaml:"initial_mode" env:"SCENESTORM_INITIAL_MODE"`

	// Autosave exports the document automatically before a gated mode
	// switch instead of asking for confirmation.
	Autosave bool `toml:"autosave" yaml:"autosave" env:"SCENESTORM_AUTOSAVE"`

	// ConfirmSwitch asks before discarding unsaved changes on a mode
	// switch. Ignored when Autosave is enabled.
	ConfirmSwitch bool `toml:"confirm_switch" yaml:"confirm_switch" env:"SCENESTORM_CONFIRM_SWITCH"`

	// HistoryLimit bounds the undo stack depth.
	HistoryLimit int `toml:"history_limit" yaml:"history_limit" env:"SCENESTORM_HISTORY_LIMIT"`

	// LogLevel is the minimum log severity ("debug", "info", "warn",
	// "error").
	LogLevel string `toml:"log_level" yaml:"log_level" env:"SCENESTORM_LOG_LEVEL"`

	// ScriptDir is searched for Lua scripts given by bare name.
	ScriptDir string `toml:"script_dir" yaml:"script_dir" env:"SCENESTORM_SCRIPT_DIR"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		InitialMode:   "edit",
		ConfirmSwitch: true,
		HistoryLimit:  100,
		LogLevel:      "info",
	}
}

// Load reads settings from the given path, dispatching on the file
// extension, then applies the environment overlay. A missing file is not
// an error: defaults plus environment are returned. An empty path skips
// the file entirely.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil && os.IsNotExist(err):
			// Fall through to the env overlay.
		case err != nil:
			return s, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := parse(path, data, &s); err != nil {
				return s, err
			}
		}
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parsing environment: %w", err)
	}
	return s, nil
}

// parse decodes file data into settings based on the file extension.
func parse(path string, data []byte, s *Settings) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format: %s", path)
	}
	return nil
}
