package server

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// testItems writes a 4x4 PNG per name, and a text file for names ending in .txt.
func testItems(t *testing.T, names ...string) []media.Item {
	t.Helper()
	dir := t.TempDir()
	items := make([]media.Item, len(names))
	for i, n := range names {
		path := filepath.Join(dir, n)
		data := []byte("hello\n")
		if filepath.Ext(n) != ".txt" {
			var buf bytes.Buffer
			if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
				t.Fatal(err)
			}
			data = buf.Bytes()
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		item, err := media.Classify(path, media.DefaultScanOptions())
		if err != nil {
			t.Fatal(err)
		}
		items[i] = item
	}
	return items
}

func newTestSession(t *testing.T, names ...string) *Session {
	t.Helper()
	s := NewSession(testItems(t, names...))
	t.Cleanup(s.Shutdown)
	return s
}

func TestSession_Scenario(t *testing.T) {
	s := newTestSession(t, "a.png", "b.png", "c.png")

	if _, err := s.Open(0); err != nil {
		t.Fatal(err)
	}
	snap, _ := s.PressKey(viewer.KeyArrowLeft)
	if snap.Index != 2 {
		t.Fatalf("ArrowLeft from 0 went to %d, want 2", snap.Index)
	}
	snap, _ = s.PressKey("+")
	snap, _ = s.PressKey("+")
	if snap.Zoom != 1.5 {
		t.Errorf("zoom = %v, want 1.5", snap.Zoom)
	}
	snap, _ = s.PressKey(viewer.KeyArrowRight)
	if snap.Index != 0 || snap.Zoom != 1 {
		t.Errorf("after ArrowRight: %+v", snap)
	}
	snap, handled := s.PressKey(viewer.KeyEscape)
	if !handled || snap.Open {
		t.Errorf("Escape: handled=%v open=%v", handled, snap.Open)
	}
}

func TestSession_PressKeyHandled(t *testing.T) {
	s := newTestSession(t, "a.png", "notes.txt")

	if _, handled := s.PressKey(viewer.KeyEscape); handled {
		t.Error("keys must be ignored while closed")
	}

	s.Open(1)
	tests := []struct {
		key  string
		want bool
	}{
		{"+", false}, // not an image
		{"r", false},
		{"x", false},
		{viewer.KeyArrowRight, true},
		{"r", true}, // a.png
		{viewer.KeyEscape, true},
	}
	for _, tt := range tests {
		if _, got := s.PressKey(tt.key); got != tt.want {
			t.Errorf("PressKey(%q) handled = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSession_Errors(t *testing.T) {
	s := newTestSession(t, "a.png")

	if _, err := s.Open(3); !errors.Is(err, viewer.ErrIndexOutOfRange) {
		t.Errorf("Open(3) error = %v", err)
	}
	if _, err := s.Navigate("sideways"); !errors.Is(err, viewer.ErrInvalidDirection) {
		t.Errorf("Navigate(sideways) error = %v", err)
	}
	if _, err := s.Zoom("up"); !errors.Is(err, viewer.ErrInvalidDirection) {
		t.Errorf("Zoom(up) error = %v", err)
	}
	if _, err := s.Item(-1); !errors.Is(err, viewer.ErrIndexOutOfRange) {
		t.Errorf("Item(-1) error = %v", err)
	}

	empty := NewSession(nil)
	defer empty.Shutdown()
	if _, err := empty.Navigate("next"); !errors.Is(err, viewer.ErrEmptyCollection) {
		t.Errorf("Navigate on empty error = %v", err)
	}
}

func TestSession_SubscribeReceivesChanges(t *testing.T) {
	s := newTestSession(t, "a.png", "b.png")
	ch, unsub := s.Subscribe()
	defer unsub()

	s.Open(1)
	s.Rotate()

	want := []viewer.Snapshot{{Open: true, Index: 1, Zoom: 1}, {Open: true, Index: 1, Zoom: 1, Rotation: 90}}
	for i, w := range want {
		select {
		case got := <-ch:
			if got.Open != w.Open || got.Index != w.Index || got.Rotation != w.Rotation {
				t.Errorf("snapshot %d = %+v, want %+v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for snapshot %d", i)
		}
	}
}

func TestSession_SetItemsKeepsCurrent(t *testing.T) {
	items := testItems(t, "a.png", "b.png")
	s := NewSession(items)
	defer s.Shutdown()

	s.Open(1)
	snap := s.SetItems(append(testItems(t, "0.png"), items...))
	if snap.Index != 2 || !snap.Open {
		t.Errorf("after SetItems: %+v", snap)
	}
}

func TestSession_ShutdownClosesSubscribers(t *testing.T) {
	s := NewSession(nil)
	ch, _ := s.Subscribe()
	s.Shutdown()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber not closed on shutdown")
	}
}

func TestSession_SetItemsResetsReplacedItem(t *testing.T) {
	s := newTestSession(t, "a.png", "b.png")
	if _, err := s.Open(1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Zoom("in"); err != nil {
		t.Fatal(err)
	}
	s.Rotate()
	s.SetLoadError(true)

	snap := s.SetItems(testItems(t, "a.png", "x.png"))
	if !snap.Open || snap.Index != 1 || snap.Item == nil || snap.Item.Name != "x.png" {
		t.Fatalf("snapshot = %+v, want x.png open at 1", snap)
	}
	if snap.Zoom != 1 || snap.Rotation != 0 || snap.LoadError {
		t.Errorf("replaced item kept the old view: zoom=%v rotation=%d loadError=%v", snap.Zoom, snap.Rotation, snap.LoadError)
	}
}
