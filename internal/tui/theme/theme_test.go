package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wethinkt/go-lightbox/internal/config"
)

func TestEmbeddedThemes(t *testing.T) {
	names := ListEmbedded()
	if len(names) != 2 {
		t.Fatalf("embedded themes = %v, want dark and light", names)
	}
	for _, name := range names {
		th, err := LoadEmbedded(name)
		if err != nil {
			t.Fatalf("LoadEmbedded(%s): %v", name, err)
		}
		if th.Accent == "" || th.Text == "" || th.Muted == "" || th.Error == "" || th.Border == "" {
			t.Errorf("theme %s has empty colours: %+v", name, th)
		}
	}
}

func TestLoadByNameUserOverride(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	if err := Save("mine", Theme{Accent: "#ff0000"}); err != nil {
		t.Fatal(err)
	}
	th, err := LoadByName("mine")
	if err != nil {
		t.Fatal(err)
	}
	if th.Accent != "#ff0000" {
		t.Errorf("accent = %s", th.Accent)
	}
	if th.Text != DefaultTheme().Text {
		t.Errorf("missing colours should come from the default theme, text = %q", th.Text)
	}

	metas := ListAvailable()
	last := metas[len(metas)-1]
	if last.Name != "mine" || last.Embedded {
		t.Errorf("user theme not listed last: %+v", metas)
	}
}

func TestLoadByNameErrors(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	if _, err := LoadByName("nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unknown theme error = %v", err)
	}

	dir := filepath.Join(home, "themes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadByName("broken"); err == nil {
		t.Error("expected a parse error")
	}
}
