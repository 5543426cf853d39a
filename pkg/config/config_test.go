package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistorySize != 50 || cfg.BookmarkCapacity != 100 {
		t.Errorf("Defaults not applied: %+v", cfg)
	}
	if !cfg.WatchDirs {
		t.Error("WatchDirs should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
theme_dirs: [/tmp/themes]
profile: work
history_size: 10
watch_dirs: false
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Profile != "work" || cfg.HistorySize != 10 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.WatchDirs {
		t.Error("watch_dirs: false not applied")
	}
	if len(cfg.ThemeDirs) != 1 || cfg.ThemeDirs[0] != "/tmp/themes" {
		t.Errorf("ThemeDirs = %v", cfg.ThemeDirs)
	}
	// Unset fields keep their defaults.
	if cfg.BookmarkCapacity != 100 {
		t.Errorf("BookmarkCapacity = %d, want default 100", cfg.BookmarkCapacity)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme_dirs: {bad"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestLoadClampsNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history_size: -1\nrender_debounce_ms: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistorySize != 50 || cfg.RenderDebounceMs != 40 {
		t.Errorf("Non-positive values not clamped: %+v", cfg)
	}
}
