// Package theme provides the colour themes of the gallery and viewer.
package theme

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wethinkt/go-lightbox/internal/config"
)

//go:embed themes/*.json
var embeddedThemes embed.FS

// Theme is the handful of colours the UI is drawn with.
type Theme struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Accent  string `json:"accent,omitempty"`  // titles, selection marker
	Text    string `json:"text,omitempty"`    // item names
	Muted   string `json:"muted,omitempty"`   // status, help, captions
	Error   string `json:"error,omitempty"`   // load errors
	Border  string `json:"border,omitempty"`  // viewer frame
	Overlay string `json:"overlay,omitempty"` // viewer background
}

// ThemeMeta holds metadata about an available theme.
type ThemeMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"` // empty for embedded
	Embedded    bool   `json:"embedded"`
}

// DefaultTheme returns the embedded dark theme.
func DefaultTheme() Theme {
	t, _ := LoadEmbedded("dark")
	return t
}

// LoadEmbedded loads a built-in theme.
func LoadEmbedded(name string) (Theme, error) {
	data, err := embeddedThemes.ReadFile("themes/" + name + ".json")
	if err != nil {
		return Theme{}, fmt.Errorf("theme %q: %w", name, os.ErrNotExist)
	}
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// ListEmbedded returns the names of the built-in themes.
func ListEmbedded() []string {
	entries, err := embeddedThemes.ReadDir("themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	return names
}

// ThemesDir returns the user themes directory inside the config directory.
func ThemesDir() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ListAvailable returns the built-in themes followed by user themes, sorted
// by name within each group.
func ListAvailable() []ThemeMeta {
	var themes []ThemeMeta
	for _, name := range ListEmbedded() {
		t, err := LoadEmbedded(name)
		if err != nil {
			continue
		}
		themes = append(themes, ThemeMeta{Name: name, Description: t.Description, Embedded: true})
	}

	dir, err := ThemesDir()
	if err != nil {
		return themes
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return themes
	}
	var user []ThemeMeta
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		meta := ThemeMeta{Name: strings.TrimSuffix(e.Name(), ".json"), Description: "User theme", Path: path}
		if data, err := os.ReadFile(path); err == nil {
			var t Theme
			if json.Unmarshal(data, &t) == nil && t.Description != "" {
				meta.Description = t.Description
			}
		}
		user = append(user, meta)
	}
	slices.SortFunc(user, func(a, b ThemeMeta) int { return strings.Compare(a.Name, b.Name) })
	return append(themes, user...)
}

// LoadByName loads a user theme, falling back to the built-in one of the
// same name. Colours missing from a user theme come from the dark theme.
func LoadByName(name string) (Theme, error) {
	if dir, err := ThemesDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(dir, name+".json")); err == nil {
			t := DefaultTheme()
			if err := json.Unmarshal(data, &t); err != nil {
				return Theme{}, fmt.Errorf("theme %q: %w", name, err)
			}
			t.Name = name
			return t, nil
		}
	}
	return LoadEmbedded(name)
}

// Save writes t to the user themes directory.
func Save(name string, t Theme) error {
	dir, err := ThemesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	t.Name = name
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644)
}
