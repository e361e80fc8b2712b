package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RowHeight != layout.DefaultRowHeight {
		t.Errorf("expected row height %d, got %d", layout.DefaultRowHeight, cfg.RowHeight)
	}
	if cfg.MaxChannels != layout.DefaultMaxRows {
		t.Errorf("expected max channels %d, got %d", layout.DefaultMaxRows, cfg.MaxChannels)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("expected theme %q, got %q", DefaultTheme, cfg.Theme)
	}
	if cfg.ListenAddr == "" {
		t.Error("listen addr should have a default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "row_height: 100\nby_category: true\ntheme: retro\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RowHeight != 100 {
		t.Errorf("expected row height 100, got %d", cfg.RowHeight)
	}
	if !cfg.ByCategory {
		t.Error("expected by_category true")
	}
	if cfg.Theme != "retro" {
		t.Errorf("expected theme retro, got %q", cfg.Theme)
	}
	// Unset keys keep defaults.
	if cfg.MaxChannels != layout.DefaultMaxRows {
		t.Errorf("expected default max channels, got %d", cfg.MaxChannels)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.RowHeight = 120

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.RowHeight != 120 {
		t.Errorf("expected 120, got %d", loaded.RowHeight)
	}
}

func TestLayoutOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RowHeight = 80
	cfg.MaxChannels = 5
	cfg.ByCategory = true

	opts := cfg.LayoutOptions()
	if opts.RowHeight != 80 || opts.MaxRows != 5 || !opts.ByCategory {
		t.Errorf("unexpected options: %+v", opts)
	}
}
