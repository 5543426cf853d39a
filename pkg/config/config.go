// Package config loads the huepick configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the user-facing configuration. Everything has a default; a
// missing config file is not an error.
type Config struct {
	// ThemeDirs are directories scanned for theme files.
	ThemeDirs []string `yaml:"theme_dirs"`

	// CatalogFile optionally defines groups and aliases explicitly.
	CatalogFile string `yaml:"catalog_file"`

	// Profile scopes bookmarks and quick slots; empty means global.
	Profile string `yaml:"profile"`

	HistorySize      int `yaml:"history_size"`
	BookmarkCapacity int `yaml:"bookmark_capacity"`

	// RenderDebounceMs coalesces rapid re-renders (search keystrokes).
	RenderDebounceMs int `yaml:"render_debounce_ms"`

	// WatchDirs enables catalog refresh when theme directories change.
	WatchDirs bool `yaml:"watch_dirs"`

	// StateDir holds the persisted picker state and usage database.
	StateDir string `yaml:"state_dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ThemeDirs:        []string{filepath.Join(home, ".config", "huepick", "themes")},
		HistorySize:      50,
		BookmarkCapacity: 100,
		RenderDebounceMs: 40,
		WatchDirs:        true,
		StateDir:         filepath.Join(home, ".local", "state", "huepick"),
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "huepick", "config.yaml")
}

// Load reads the config at path, filling unset fields from Default. A
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = Default().HistorySize
	}
	if cfg.BookmarkCapacity <= 0 {
		cfg.BookmarkCapacity = Default().BookmarkCapacity
	}
	if cfg.RenderDebounceMs <= 0 {
		cfg.RenderDebounceMs = Default().RenderDebounceMs
	}
	if cfg.StateDir == "" {
		cfg.StateDir = Default().StateDir
	}
	return cfg, nil
}
