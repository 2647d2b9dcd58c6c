package server

import (
	"fmt"
	"sync"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// Session is a viewer shared by every client of the control server. The
// viewer state machine is single-threaded, so all access goes through mu.
type Session struct {
	mu     sync.Mutex
	state  *viewer.State
	bus    *viewer.KeyBus
	router *viewer.KeyRouter
	hub    *Hub
	ops    int // state operations applied, guarded by mu
}

// NewSession creates a session over items. The session owns its scroll lock
// so a server never contends with a terminal viewer in the same process.
func NewSession(items []media.Item) *Session {
	state := viewer.New(items)
	s := &Session{
		state:  state,
		bus:    viewer.NewKeyBus(),
		router: viewer.NewKeyRouter(state, &viewer.ScrollLock{}),
		hub:    NewHub(),
	}
	s.router.Attach(s.bus)
	state.Subscribe(s.observe)
	collectionSize.Set(float64(len(items)))
	return s
}

// observe runs inside a state operation, with mu held.
func (s *Session) observe(c viewer.Change) {
	s.ops++
	viewerOpsTotal.WithLabelValues(string(c.Op)).Inc()
	if c.After.Open {
		viewerOpen.Set(1)
	} else {
		viewerOpen.Set(0)
	}
	s.hub.Publish(c.After)
}

// Shutdown detaches the key router and disconnects all stream subscribers.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.Detach()
	s.hub.Close()
}

// Subscribe streams the snapshot after every state change.
func (s *Session) Subscribe() (<-chan viewer.Snapshot, func()) {
	return s.hub.Subscribe()
}

// Snapshot returns the current viewer state.
func (s *Session) Snapshot() viewer.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Items returns a copy of the collection.
func (s *Session) Items() []media.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Items()
}

// Item returns the item at index.
func (s *Session) Item(index int) (media.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.state.Items()
	if index < 0 || index >= len(items) {
		return media.Item{}, fmt.Errorf("item %d of %d: %w", index, len(items), viewer.ErrIndexOutOfRange)
	}
	return items[index], nil
}

// SetItems replaces the collection, typically after a rescan.
func (s *Session) SetItems(items []media.Item) viewer.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetItems(items)
	collectionSize.Set(float64(len(items)))
	return s.state.Snapshot()
}

// Open shows the item at index with a fresh view.
func (s *Session) Open(index int) (viewer.Snapshot, error) {
	return s.apply(func() error { return s.state.Open(index) })
}

// Close hides the viewer. Closing a closed viewer is a no-op.
func (s *Session) Close() viewer.Snapshot {
	snap, _ := s.apply(func() error { s.state.Close(); return nil })
	return snap
}

// Navigate parses direction ("previous", "prev" or "next") and moves.
func (s *Session) Navigate(direction string) (viewer.Snapshot, error) {
	d, err := viewer.ParseDirection(direction)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.apply(func() error { return s.state.Navigate(d) })
}

// Zoom parses direction ("in" or "out") and zooms.
func (s *Session) Zoom(direction string) (viewer.Snapshot, error) {
	d, err := viewer.ParseZoomDirection(direction)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.apply(func() error { return s.state.Zoom(d) })
}

// Rotate turns the current item a quarter turn clockwise.
func (s *Session) Rotate() viewer.Snapshot {
	snap, _ := s.apply(func() error { s.state.Rotate(); return nil })
	return snap
}

// SetLoadError records whether the current item failed to load.
func (s *Session) SetLoadError(failed bool) viewer.Snapshot {
	snap, _ := s.apply(func() error { s.state.SetLoadError(failed); return nil })
	return snap
}

// PressKey publishes key on the session's key bus. handled reports whether
// the router acted on it, using the same table as the terminal viewer.
func (s *Session) PressKey(key string) (snap viewer.Snapshot, handled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := s.ops
	s.bus.Publish(key)
	handled = s.ops > ops
	if handled {
		keyPressesTotal.WithLabelValues(key).Inc()
	}
	return s.state.Snapshot(), handled
}

func (s *Session) apply(op func() error) (viewer.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := op()
	return s.state.Snapshot(), err
}
