// Package viewer holds the full-screen media viewer: its state machine, the
// keyboard router that drives it and the page-level scroll lock it holds
// while open.
//
// A State is not safe for concurrent use. The TUI drives it from the
// bubbletea update loop; the control server serialises access itself.
package viewer

import (
	"fmt"
	"slices"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// Zoom is tracked in quarter steps so repeated zooming never drifts.
const (
	zoomStepQuarters    = 1
	zoomMinQuarters     = 2  // 0.5
	zoomMaxQuarters     = 12 // 3.0
	zoomDefaultQuarters = 4  // 1.0

	// ZoomStep is the increment applied by one Zoom call.
	ZoomStep = 0.25
	// MinZoom and MaxZoom bound the zoom level.
	MinZoom = 0.5
	MaxZoom = 3.0
	// DefaultZoom is the level after open, close and navigation.
	DefaultZoom = 1.0

	rotationStep = 90
)

// Op names the operation that produced a Change.
type Op string

const (
	OpOpen      Op = "open"
	OpClose     Op = "close"
	OpNavigate  Op = "navigate"
	OpZoom      Op = "zoom"
	OpRotate    Op = "rotate"
	OpLoadError Op = "load_error"
	OpItems     Op = "items"
)

// Snapshot is a copy of the observable state tuple.
type Snapshot struct {
	Open      bool        `json:"open"`
	Index     int         `json:"index"`
	Zoom      float64     `json:"zoom"`
	Rotation  int         `json:"rotation"`
	LoadError bool        `json:"load_error"`
	Count     int         `json:"count"`
	Item      *media.Item `json:"item,omitempty"`
}

// Change is delivered to subscribers after every operation.
type Change struct {
	Op     Op
	Before Snapshot
	After  Snapshot
}

// Opened reports whether the change moved the viewer from closed to open.
func (c Change) Opened() bool { return !c.Before.Open && c.After.Open }

// Closed reports whether the change moved the viewer from open to closed.
func (c Change) Closed() bool { return c.Before.Open && !c.After.Open }

// State is the viewer state machine over an ordered collection.
type State struct {
	items        []media.Item
	open         bool
	index        int
	zoomQuarters int
	rotation     int
	loadError    bool

	subs    map[int]func(Change)
	nextSub int
}

// New creates a closed viewer over items.
func New(items []media.Item) *State {
	return &State{
		items:        slices.Clone(items),
		zoomQuarters: zoomDefaultQuarters,
		subs:         make(map[int]func(Change)),
	}
}

// Subscribe registers fn to run after every operation. The returned
// function removes the subscription and may be called more than once.
func (s *State) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Open shows the item at index with a fresh zoom, rotation and error flag.
func (s *State) Open(index int) error {
	if len(s.items) == 0 {
		return fmt.Errorf("open %d: %w", index, ErrEmptyCollection)
	}
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("open %d of %d: %w", index, len(s.items), ErrIndexOutOfRange)
	}
	before := s.Snapshot()
	s.open = true
	s.index = index
	s.resetView()
	s.notify(OpOpen, before)
	return nil
}

// Close hides the viewer and resets the view. Closing a closed viewer is a no-op
// apart from the reset.
func (s *State) Close() {
	before := s.Snapshot()
	s.open = false
	s.resetView()
	s.notify(OpClose, before)
}

// Navigate moves circularly to the previous or next item and resets the view.
func (s *State) Navigate(d Direction) error {
	step, err := d.step()
	if err != nil {
		return err
	}
	n := len(s.items)
	if n == 0 {
		return fmt.Errorf("navigate %s: %w", d, ErrEmptyCollection)
	}
	before := s.Snapshot()
	s.index = ((s.index+step)%n + n) % n
	s.resetView()
	s.notify(OpNavigate, before)
	return nil
}

// Zoom changes the zoom level by one step within [MinZoom, MaxZoom].
func (s *State) Zoom(d ZoomDirection) error {
	step, err := d.step()
	if err != nil {
		return err
	}
	before := s.Snapshot()
	s.zoomQuarters = min(max(s.zoomQuarters+step*zoomStepQuarters, zoomMinQuarters), zoomMaxQuarters)
	s.notify(OpZoom, before)
	return nil
}

// Rotate turns the view a quarter clockwise.
func (s *State) Rotate() {
	before := s.Snapshot()
	s.rotation = (s.rotation + rotationStep) % 360
	s.notify(OpRotate, before)
}

// SetLoadError records whether the current item failed to load.
func (s *State) SetLoadError(failed bool) {
	before := s.Snapshot()
	s.loadError = failed
	s.notify(OpLoadError, before)
}

// SetItems replaces the collection. The current item stays selected when
// it is still present; otherwise the index is kept when valid and clamped to
// the last item when not. An open viewer over an emptied collection closes.
func (s *State) SetItems(items []media.Item) {
	before := s.Snapshot()
	s.items = slices.Clone(items)
	if before.Item != nil {
		if i := slices.IndexFunc(s.items, func(it media.Item) bool { return it.Source == before.Item.Source }); i >= 0 {
			s.index = i
			s.notify(OpItems, before)
			return
		}
	}
	// The current item is gone, so whatever now sits at the index is a
	// different item and starts with a fresh view.
	switch {
	case len(s.items) == 0:
		s.index = 0
		s.open = false
	case s.index >= len(s.items):
		s.index = len(s.items) - 1
	}
	s.resetView()
	s.notify(OpItems, before)
}

func (s *State) resetView() {
	s.zoomQuarters = zoomDefaultQuarters
	s.rotation = 0
	s.loadError = false
}

// IsOpen reports whether the viewer is shown.
func (s *State) IsOpen() bool { return s.open }

// Index returns the current index. It is meaningless for an empty collection.
func (s *State) Index() int { return s.index }

// ZoomLevel returns the zoom factor in [MinZoom, MaxZoom].
func (s *State) ZoomLevel() float64 { return float64(s.zoomQuarters) / 4 }

// Rotation returns 0, 90, 180 or 270.
func (s *State) Rotation() int { return s.rotation }

// LoadError reports whether the current item failed to load.
func (s *State) LoadError() bool { return s.loadError }

// Len returns the collection length.
func (s *State) Len() int { return len(s.items) }

// Items returns a copy of the collection.
func (s *State) Items() []media.Item { return slices.Clone(s.items) }

// CurrentItem returns the item at the current index, or false when the
// collection is empty.
func (s *State) CurrentItem() (media.Item, bool) {
	if s.index < 0 || s.index >= len(s.items) {
		return media.Item{}, false
	}
	return s.items[s.index], true
}

// Snapshot copies the observable tuple.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Open:      s.open,
		Index:     s.index,
		Zoom:      s.ZoomLevel(),
		Rotation:  s.rotation,
		LoadError: s.loadError,
		Count:     len(s.items),
	}
	if item, ok := s.CurrentItem(); ok {
		snap.Item = &item
	}
	return snap
}

func (s *State) notify(op Op, before Snapshot) {
	change := Change{Op: op, Before: before, After: s.Snapshot()}
	tuilog.Log.Debug("viewer transition",
		"op", op,
		"open", change.After.Open,
		"index", change.After.Index,
		"zoom", change.After.Zoom,
		"rotation", change.After.Rotation,
		"load_error", change.After.LoadError)

	// Copy so subscribers may unsubscribe while being notified.
	fns := make([]func(Change), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	for _, fn := range fns {
		fn(change)
	}
}
