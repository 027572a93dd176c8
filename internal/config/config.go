// Package config loads and validates editor configuration from TOML
// files, with live reload through a file watcher.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Errors returned by configuration loading and validation.
var (
	// ErrInvalidValue indicates a configuration value outside its valid range.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config is the full editor configuration. Zero values are filled from
// Default before validation, so a partial TOML file is always usable.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Scroll  ScrollConfig  `toml:"scroll"`
	Cursor  CursorConfig  `toml:"cursor"`
	Font    FontConfig    `toml:"font"`
	Logging LoggingConfig `toml:"logging"`
}

// EditorConfig holds document and layout settings.
type EditorConfig struct {
	// WrapMargin reserves columns at the right edge of the viewport.
	WrapMargin int `toml:"wrap_margin"`

	// EstimatedCharsPerLine tunes height estimates for unmeasured paragraphs.
	EstimatedCharsPerLine int `toml:"estimated_chars_per_line"`

	// ReadOnly opens documents without editing.
	ReadOnly bool `toml:"read_only"`
}

// ScrollConfig holds viewport and animation settings.
type ScrollConfig struct {
	// AnimationMS is the duration of smooth scrolls in milliseconds.
	// Zero disables animation.
	AnimationMS int `toml:"animation_ms"`

	// Overscan is the number of paragraphs prepared beyond the visible
	// range on each side.
	Overscan int `toml:"overscan"`

	// WheelLines is how many lines one mouse wheel step scrolls.
	WheelLines int `toml:"wheel_lines"`
}

// CursorConfig holds caret settings.
type CursorConfig struct {
	// BlinkMS is the caret blink half-period in milliseconds. Zero
	// disables blinking.
	BlinkMS int `toml:"blink_ms"`
}

// FontConfig holds measurement settings. With no Path the editor uses
// fixed-width cell metrics.
type FontConfig struct {
	// Path is a TrueType font file for proportional measurement.
	Path string `toml:"path"`

	// Size is the point size for TrueType measurement.
	Size float64 `toml:"size"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// File receives log output; empty discards it, "-" writes stderr.
	File string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			EstimatedCharsPerLine: 80,
		},
		Scroll: ScrollConfig{
			AnimationMS: 150,
			Overscan:    2,
			WheelLines:  3,
		},
		Cursor: CursorConfig{
			BlinkMS: 500,
		},
		Font: FontConfig{
			Size: 12,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads TOML from path over the defaults. A missing file returns the
// defaults without error; a malformed file or invalid value does not.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks every value against its valid range.
func (c *Config) Validate() error {
	if c.Editor.WrapMargin < 0 {
		return fmt.Errorf("%w: editor.wrap_margin %d", ErrInvalidValue, c.Editor.WrapMargin)
	}
	if c.Editor.EstimatedCharsPerLine <= 0 {
		return fmt.Errorf("%w: editor.estimated_chars_per_line %d", ErrInvalidValue, c.Editor.EstimatedCharsPerLine)
	}
	if c.Scroll.AnimationMS < 0 {
		return fmt.Errorf("%w: scroll.animation_ms %d", ErrInvalidValue, c.Scroll.AnimationMS)
	}
	if c.Scroll.Overscan < 0 {
		return fmt.Errorf("%w: scroll.overscan %d", ErrInvalidValue, c.Scroll.Overscan)
	}
	if c.Scroll.WheelLines <= 0 {
		return fmt.Errorf("%w: scroll.wheel_lines %d", ErrInvalidValue, c.Scroll.WheelLines)
	}
	if c.Cursor.BlinkMS < 0 {
		return fmt.Errorf("%w: cursor.blink_ms %d", ErrInvalidValue, c.Cursor.BlinkMS)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("%w: font.size %v", ErrInvalidValue, c.Font.Size)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	return nil
}

// ScrollDuration returns the smooth scroll duration.
func (c *Config) ScrollDuration() time.Duration {
	return time.Duration(c.Scroll.AnimationMS) * time.Millisecond
}

// BlinkInterval returns the caret blink half-period.
func (c *Config) BlinkInterval() time.Duration {
	return time.Duration(c.Cursor.BlinkMS) * time.Millisecond
}

// DefaultPath returns the user's config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "inkstone", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "inkstone", "config.toml")
}
