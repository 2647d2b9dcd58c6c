package viewer

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/wethinkt/go-lightbox/internal/media"
)

func images(names ...string) []media.Item {
	items := make([]media.Item, len(names))
	for i, n := range names {
		items[i] = media.NewItem("/media/"+n, media.TypeImage)
	}
	return items
}

func TestNewStateDefaults(t *testing.T) {
	s := New(images("a.png"))
	if s.IsOpen() {
		t.Error("new viewer should be closed")
	}
	if s.ZoomLevel() != 1.0 {
		t.Errorf("zoom = %v, want 1.0", s.ZoomLevel())
	}
	if s.Rotation() != 0 {
		t.Errorf("rotation = %d, want 0", s.Rotation())
	}
	if s.LoadError() {
		t.Error("load error should default to false")
	}
}

func TestZoomInSaturates(t *testing.T) {
	for n := 0; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := New(images("a.png"))
			for i := 0; i < n; i++ {
				if err := s.Zoom(ZoomIn); err != nil {
					t.Fatalf("Zoom(in): %v", err)
				}
			}
			want := math.Min(1.0+0.25*float64(n), 3.0)
			if s.ZoomLevel() != want {
				t.Errorf("zoom after %d ins = %v, want %v", n, s.ZoomLevel(), want)
			}
		})
	}
}

func TestZoomOutSaturates(t *testing.T) {
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := New(images("a.png"))
			for i := 0; i < n; i++ {
				if err := s.Zoom(ZoomOut); err != nil {
					t.Fatalf("Zoom(out): %v", err)
				}
			}
			want := math.Max(1.0-0.25*float64(n), 0.5)
			if s.ZoomLevel() != want {
				t.Errorf("zoom after %d outs = %v, want %v", n, s.ZoomLevel(), want)
			}
		})
	}
}

func TestRotateWraps(t *testing.T) {
	s := New(images("a.png"))
	for n := 1; n <= 9; n++ {
		s.Rotate()
		if want := (90 * n) % 360; s.Rotation() != want {
			t.Fatalf("rotation after %d = %d, want %d", n, s.Rotation(), want)
		}
	}
}

func TestZoomAndRotateLeaveIndexAndErrorAlone(t *testing.T) {
	s := New(images("a.png", "b.png"))
	if err := s.Open(1); err != nil {
		t.Fatal(err)
	}
	s.SetLoadError(true)
	_ = s.Zoom(ZoomIn)
	s.Rotate()
	if s.Index() != 1 {
		t.Errorf("index = %d, want 1", s.Index())
	}
	if !s.LoadError() {
		t.Error("zoom/rotate must not clear the load error")
	}
}

func TestNavigateCycles(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprintf("%d.png", i)
			}
			s := New(images(names...))
			start := n / 2
			if err := s.Open(start); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < n; i++ {
				if err := s.Navigate(Next); err != nil {
					t.Fatal(err)
				}
			}
			if s.Index() != start {
				t.Errorf("after %d nexts index = %d, want %d", n, s.Index(), start)
			}

			_ = s.Navigate(Next)
			_ = s.Navigate(Previous)
			if s.Index() != start {
				t.Errorf("previous did not undo next: index = %d, want %d", s.Index(), start)
			}
		})
	}
}

func TestNavigateWrapsBackwards(t *testing.T) {
	s := New(images("a.png", "b.png", "c.png"))
	_ = s.Open(0)
	if err := s.Navigate(Previous); err != nil {
		t.Fatal(err)
	}
	if s.Index() != 2 {
		t.Errorf("previous from 0 = %d, want 2", s.Index())
	}
}

func TestNavigateResetsView(t *testing.T) {
	s := New(images("a.png", "b.png"))
	_ = s.Open(0)
	_ = s.Zoom(ZoomIn)
	_ = s.Zoom(ZoomIn)
	s.Rotate()
	s.SetLoadError(true)

	if err := s.Navigate(Next); err != nil {
		t.Fatal(err)
	}
	if s.ZoomLevel() != 1.0 || s.Rotation() != 0 || s.LoadError() {
		t.Errorf("navigate did not reset view: zoom=%v rotation=%d loadError=%v",
			s.ZoomLevel(), s.Rotation(), s.LoadError())
	}
}

func TestOpenAndCloseReset(t *testing.T) {
	s := New(images("a.png", "b.png"))
	_ = s.Open(0)
	_ = s.Zoom(ZoomOut)
	s.Rotate()
	s.SetLoadError(true)

	s.Close()
	if s.IsOpen() {
		t.Fatal("still open after close")
	}
	if s.ZoomLevel() != 1.0 || s.Rotation() != 0 || s.LoadError() {
		t.Error("close did not reset view")
	}

	s.Close()
	if s.IsOpen() {
		t.Error("second close reopened the viewer")
	}

	_ = s.Zoom(ZoomIn)
	if err := s.Open(1); err != nil {
		t.Fatal(err)
	}
	if !s.IsOpen() || s.Index() != 1 || s.ZoomLevel() != 1.0 {
		t.Errorf("open(1): open=%v index=%d zoom=%v", s.IsOpen(), s.Index(), s.ZoomLevel())
	}
}

func TestOpenRejectsOutOfRange(t *testing.T) {
	s := New(images("a.png"))
	for _, idx := range []int{-1, 1, 5} {
		if err := s.Open(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Open(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if s.IsOpen() {
		t.Error("rejected open must leave the viewer closed")
	}

	empty := New(nil)
	if err := empty.Open(0); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("Open on empty = %v, want ErrEmptyCollection", err)
	}
	if err := empty.Navigate(Next); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("Navigate on empty = %v, want ErrEmptyCollection", err)
	}
}

func TestInvalidDirectionsFailFast(t *testing.T) {
	s := New(images("a.png", "b.png"))
	_ = s.Open(0)
	if err := s.Navigate(Direction("sideways")); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Navigate(sideways) = %v, want ErrInvalidDirection", err)
	}
	if err := s.Zoom(ZoomDirection("up")); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Zoom(up) = %v, want ErrInvalidDirection", err)
	}
	if s.Index() != 0 || s.ZoomLevel() != 1.0 {
		t.Error("invalid direction changed state")
	}
	if _, err := ParseDirection("left"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(left) = %v", err)
	}
	if d, err := ParseDirection("prev"); err != nil || d != Previous {
		t.Errorf("ParseDirection(prev) = %v, %v", d, err)
	}
	if _, err := ParseZoomDirection("sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseZoomDirection(sideways) = %v", err)
	}
}

func TestCurrentItem(t *testing.T) {
	s := New(images("a.png", "b.png"))
	_ = s.Open(1)
	item, ok := s.CurrentItem()
	if !ok || item.Name != "b.png" {
		t.Errorf("CurrentItem = %+v, %v", item, ok)
	}
	if _, ok := New(nil).CurrentItem(); ok {
		t.Error("empty collection should have no current item")
	}
}

func TestSetItemsKeepsCurrentItem(t *testing.T) {
	s := New(images("a.png", "b.png", "c.png"))
	_ = s.Open(1)
	_ = s.Zoom(ZoomIn)

	s.SetItems(images("0.png", "a.png", "b.png", "c.png"))
	item, _ := s.CurrentItem()
	if item.Name != "b.png" || s.Index() != 2 {
		t.Errorf("current = %s at %d, want b.png at 2", item.Name, s.Index())
	}
	if s.ZoomLevel() != 1.25 {
		t.Errorf("keeping the same item should keep zoom, got %v", s.ZoomLevel())
	}

	s.SetItems(images("a.png"))
	if s.Index() != 0 || !s.IsOpen() {
		t.Errorf("index = %d open = %v after shrink", s.Index(), s.IsOpen())
	}

	s.SetItems(nil)
	if s.IsOpen() {
		t.Error("viewer over an empty collection should close")
	}
}

func TestSetItemsResetsViewOfReplacedItem(t *testing.T) {
	s := New(images("a.png", "b.png", "c.png"))
	_ = s.Open(1)
	_ = s.Zoom(ZoomIn)
	s.Rotate()
	s.SetLoadError(true)

	s.SetItems(images("a.png", "x.png", "c.png"))
	item, _ := s.CurrentItem()
	if item.Name != "x.png" || s.Index() != 1 || !s.IsOpen() {
		t.Fatalf("current = %s at %d open = %v, want x.png at 1 open", item.Name, s.Index(), s.IsOpen())
	}
	if s.ZoomLevel() != DefaultZoom || s.Rotation() != 0 || s.LoadError() {
		t.Errorf("x.png inherited the view of b.png: zoom=%v rotation=%d loadError=%v",
			s.ZoomLevel(), s.Rotation(), s.LoadError())
	}

	_ = s.Zoom(ZoomOut)
	s.SetItems(images("a.png"))
	if s.ZoomLevel() != DefaultZoom {
		t.Errorf("clamped index kept zoom %v", s.ZoomLevel())
	}
}

func TestSubscribersSeeTransitions(t *testing.T) {
	s := New(images("a.png", "b.png"))
	var ops []Op
	var opened, closed int
	unsub := s.Subscribe(func(c Change) {
		ops = append(ops, c.Op)
		if c.Opened() {
			opened++
		}
		if c.Closed() {
			closed++
		}
	})

	_ = s.Open(0)
	_ = s.Navigate(Next)
	s.Close()
	unsub()
	unsub()
	_ = s.Open(0)

	want := []Op{OpOpen, OpNavigate, OpClose}
	if fmt.Sprint(ops) != fmt.Sprint(want) {
		t.Errorf("ops = %v, want %v", ops, want)
	}
	if opened != 1 || closed != 1 {
		t.Errorf("opened=%d closed=%d, want 1 and 1", opened, closed)
	}
}

func TestSnapshot(t *testing.T) {
	s := New(images("a.png", "b.png"))
	_ = s.Open(1)
	s.Rotate()
	snap := s.Snapshot()
	if !snap.Open || snap.Index != 1 || snap.Rotation != 90 || snap.Count != 2 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.Item == nil || snap.Item.Name != "b.png" {
		t.Errorf("snapshot item = %+v", snap.Item)
	}
}
