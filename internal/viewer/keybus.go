package viewer

import "sync"

// Standard key names delivered on a KeySource.
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// KeySource is a stream of key-down events identified by standard key names.
type KeySource interface {
	Subscribe(fn func(key string)) (unsubscribe func())
}

// KeyBus fans key events out to its listeners. Publish calls listeners
// synchronously in subscription order.
type KeyBus struct {
	mu        sync.RWMutex
	nextID    int
	listeners []keyListener
}

type keyListener struct {
	id int
	fn func(string)
}

// NewKeyBus creates an empty bus.
func NewKeyBus() *KeyBus {
	return &KeyBus{}
}

// Subscribe adds a listener. The returned function removes it and is safe to
// call repeatedly.
func (b *KeyBus) Subscribe(fn func(key string)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners = append(b.listeners, keyListener{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers key to every listener.
func (b *KeyBus) Publish(key string) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()

	for _, l := range listeners {
		l.fn(key)
	}
}

// Listeners returns the number of subscribed listeners.
func (b *KeyBus) Listeners() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
