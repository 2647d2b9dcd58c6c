package viewer

import "sync"

// ScrollLock is the page-level "do not scroll the background" flag. Holders
// acquire it and must call the returned release exactly once; extra release
// calls are ignored, so release can sit on every exit path.
type ScrollLock struct {
	mu    sync.Mutex
	holds int
}

// PageScroll is the process-wide lock consulted by the gallery page.
var PageScroll = &ScrollLock{}

// Acquire takes a hold on the lock.
func (l *ScrollLock) Acquire() (release func()) {
	l.mu.Lock()
	l.holds++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.holds--
			l.mu.Unlock()
		})
	}
}

// Locked reports whether any holder currently suppresses scrolling.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holds > 0
}
