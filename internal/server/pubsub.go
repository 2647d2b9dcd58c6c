package server

import (
	"sync"

	"github.com/wethinkt/go-lightbox/internal/tuilog"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// hubBuffer is the per-subscriber backlog before snapshots are dropped.
const hubBuffer = 64

// Hub provides in-memory fan-out of viewer snapshots to stream subscribers.
type Hub struct {
	mu     sync.RWMutex
	subs   []*subscriber
	closed bool
}

type subscriber struct {
	ch     chan viewer.Snapshot
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe returns a channel that receives every published snapshot.
// Call the returned function to unsubscribe and close the channel.
func (h *Hub) Subscribe() (<-chan viewer.Snapshot, func()) {
	ch := make(chan viewer.Snapshot, hubBuffer)
	sub := &subscriber{ch: ch}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs = append(h.subs, sub)
	h.mu.Unlock()

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s == sub {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				break
			}
		}
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}
	return ch, unsub
}

// Publish sends snap to all subscribers. Slow consumers whose buffers are
// full miss the snapshot.
func (h *Hub) Publish(snap viewer.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.closed {
			continue
		}
		select {
		case sub.ch <- snap:
		default:
			tuilog.Log.Warn("dropping snapshot for slow subscriber")
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber channel. Later subscriptions receive a
// closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, sub := range h.subs {
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}
	h.subs = nil
}
