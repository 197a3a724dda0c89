// Package config loads boxlayout.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up in the project root.
const FileName = "boxlayout.toml"

// Config represents the boxlayout.toml configuration file
type Config struct {
	Logger LoggerConfig `toml:"logger"`
	Canvas CanvasConfig `toml:"canvas"`
}

type LoggerConfig struct {
	// debug, info, warn or error
	Level string `toml:"level"`
	// console or json
	Format string `toml:"format"`
	// Optional rotating log file, always written as JSON
	LogFile    string `toml:"log_file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

type CanvasConfig struct {
	// How long grid overflow warnings stay visible
	OverflowClearMS int `toml:"overflow_clear_ms"`
	// Artboard used by `boxlayout calc` when no size flags are given
	ArtboardWidth  float64 `toml:"artboard_width"`
	ArtboardHeight float64 `toml:"artboard_height"`
	// Children created for flex commands without an explicit count
	DefaultChildCount int `toml:"default_child_count"`
}

// OverflowClearAfter returns OverflowClearMS as a duration.
func (c CanvasConfig) OverflowClearAfter() time.Duration {
	return time.Duration(c.OverflowClearMS) * time.Millisecond
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "console",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Canvas: CanvasConfig{
			OverflowClearMS:   8000,
			ArtboardWidth:     800,
			ArtboardHeight:    600,
			DefaultChildCount: 3,
		},
	}
}

// LoadConfig loads the configuration from path.
// If the file doesn't exist, returns default config
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for unusable values
	def := DefaultConfig()
	if config.Canvas.OverflowClearMS <= 0 {
		config.Canvas.OverflowClearMS = def.Canvas.OverflowClearMS
	}
	if config.Canvas.ArtboardWidth <= 0 {
		config.Canvas.ArtboardWidth = def.Canvas.ArtboardWidth
	}
	if config.Canvas.ArtboardHeight <= 0 {
		config.Canvas.ArtboardHeight = def.Canvas.ArtboardHeight
	}
	if config.Canvas.DefaultChildCount <= 0 {
		config.Canvas.DefaultChildCount = def.Canvas.DefaultChildCount
	}

	return config, nil
}

// SaveConfig saves the configuration to path
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// FindProjectRoot walks up from dir looking for boxlayout.toml, falling back
// to the nearest go.mod.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	modRoot := ""
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		if modRoot == "" {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				modRoot = dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			if modRoot != "" {
				return modRoot, nil
			}
			return "", fmt.Errorf("no %s or go.mod found", FileName)
		}
		dir = parent
	}
}
