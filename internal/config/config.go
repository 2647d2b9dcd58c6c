// Package config loads and saves the lightbox configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// EnvHome overrides the configuration directory.
const EnvHome = "LIGHTBOX_HOME"

// Graphics protocol names accepted by the graphics key.
const (
	GraphicsAuto   = "auto"
	GraphicsKitty  = "kitty"
	GraphicsSixel  = "sixel"
	GraphicsBlocks = "blocks"
	GraphicsNone   = "none"
)

// Config holds the lightbox configuration.
type Config struct {
	Theme    string       `json:"theme"`              // built-in dark/light or a user theme name
	Language string       `json:"language,omitempty"` // BCP 47 tag, empty follows the environment
	Graphics string       `json:"graphics"`           // auto, kitty, sixel, blocks or none
	Media    MediaConfig  `json:"media"`
	Watch    WatchConfig  `json:"watch"`
	Server   ServerConfig `json:"server"`
}

// MediaConfig controls which files make up the collection.
type MediaConfig struct {
	ImageExtensions []string `json:"extensions_image"`
	IncludeHidden   bool     `json:"include_hidden"`
	Recursive       bool     `json:"recursive"`
}

// WatchConfig controls rescanning when the media directories change.
type WatchConfig struct {
	Enabled  bool   `json:"enabled"`
	Debounce string `json:"debounce"` // e.g. "500ms"
}

// DebounceDuration returns the parsed debounce, 500ms when unset or invalid.
func (c WatchConfig) DebounceDuration() time.Duration {
	if c.Debounce != "" {
		if d, err := time.ParseDuration(c.Debounce); err == nil && d > 0 {
			return d
		}
	}
	return 500 * time.Millisecond
}

// ServerConfig is the control server listen address.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Addr joins host and port.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme:    "dark",
		Graphics: GraphicsAuto,
		Media: MediaConfig{
			ImageExtensions: []string{"png", "jpg", "jpeg", "gif", "bmp", "webp", "tif", "tiff"},
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: "500ms",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 7480,
		},
	}
}

// Validate rejects values the rest of the program cannot use.
func (c Config) Validate() error {
	if c.Theme == "" || strings.ContainsAny(c.Theme, `/\`) || strings.HasPrefix(c.Theme, ".") {
		return fmt.Errorf("theme %q: want a theme name such as dark or light", c.Theme)
	}
	switch c.Graphics {
	case GraphicsAuto, GraphicsKitty, GraphicsSixel, GraphicsBlocks, GraphicsNone:
	default:
		return fmt.Errorf("graphics %q: want auto, kitty, sixel, blocks or none", c.Graphics)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

// Dir returns the configuration directory, ~/.lightbox unless LIGHTBOX_HOME
// is set.
func Dir() (string, error) {
	if d := os.Getenv(EnvHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lightbox"), nil
}

// Path returns the path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads config.json. A missing file yields the defaults without writing
// anything; keys absent from the file keep their default values.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	if cfg.Graphics == "" {
		cfg.Graphics = GraphicsAuto
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to config.json, creating the directory when needed.
func Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
