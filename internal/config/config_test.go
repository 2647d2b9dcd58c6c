package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Addr() != "localhost:7480" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if !cfg.Watch.Enabled {
		t.Error("watching should be on by default")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "dark" || cfg.Graphics != GraphicsAuto {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); !os.IsNotExist(err) {
		t.Error("Load must not create the config file")
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"theme":"light","server":{"port":9000}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if len(cfg.Media.ImageExtensions) == 0 {
		t.Error("image extensions lost their default")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{`, "parse"},
		{"bad theme", `{"theme":"../neon"}`, "theme"},
		{"bad graphics", `{"graphics":"ascii"}`, "graphics"},
		{"bad port", `{"server":{"port":70000}}`, "port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv(EnvHome, dir)
			if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(tt.body), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(EnvHome, dir)

	cfg := Default()
	cfg.Graphics = GraphicsSixel
	cfg.Media.Recursive = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Graphics != GraphicsSixel || !got.Media.Recursive {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestDebounceDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 500 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"nonsense", 500 * time.Millisecond},
		{"-1s", 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := (WatchConfig{Debounce: tt.in}).DebounceDuration(); got != tt.want {
			t.Errorf("DebounceDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
