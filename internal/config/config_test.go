package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[scroll]\nanimation_ms = 300\n\n[cursor]\nblink_ms = 250\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scroll.AnimationMS != 300 {
		t.Errorf("animation_ms = %d, want 300", cfg.Scroll.AnimationMS)
	}
	if got := cfg.ScrollDuration(); got != 300*time.Millisecond {
		t.Errorf("scroll duration %v, want 300ms", got)
	}
	if got := cfg.BlinkInterval(); got != 250*time.Millisecond {
		t.Errorf("blink interval %v, want 250ms", got)
	}
	// Untouched sections keep their defaults.
	if cfg.Editor.EstimatedCharsPerLine != 80 {
		t.Errorf("estimated_chars_per_line = %d, want default 80", cfg.Editor.EstimatedCharsPerLine)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[scroll\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadInvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative wrap margin", func(c *Config) { c.Editor.WrapMargin = -1 }},
		{"zero chars per line", func(c *Config) { c.Editor.EstimatedCharsPerLine = 0 }},
		{"negative animation", func(c *Config) { c.Scroll.AnimationMS = -5 }},
		{"negative overscan", func(c *Config) { c.Scroll.Overscan = -1 }},
		{"zero wheel lines", func(c *Config) { c.Scroll.WheelLines = 0 }},
		{"negative blink", func(c *Config) { c.Cursor.BlinkMS = -1 }},
		{"zero font size", func(c *Config) { c.Font.Size = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "shout" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[scroll]\nanimation_ms = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	reloaded := make(chan Config, 1)
	w.OnReload(func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[scroll]\nanimation_ms = 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Scroll.AnimationMS != 400 {
			t.Errorf("animation_ms = %d, want 400", cfg.Scroll.AnimationMS)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
