package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// Watcher rescans a collection when files under its directories change.
// Bursts of events inside the debounce window produce a single rescan.
type Watcher struct {
	paths    []string
	opts     ScanOptions
	debounce time.Duration

	fsw  *fsnotify.Watcher
	done chan struct{}
	once sync.Once
}

// NewWatcher prepares a watcher for the same paths and options used by Scan.
func NewWatcher(paths []string, opts ScanOptions, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		paths:    paths,
		opts:     opts,
		debounce: debounce,
		fsw:      fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching and returns a channel of fresh collections. The
// channel is closed when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) (<-chan []Item, error) {
	for _, dir := range Dirs(w.paths) {
		w.add(dir)
	}
	out := make(chan []Item, 1)
	go w.loop(ctx, out)
	return out, nil
}

// Stop releases the underlying watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) add(root string) {
	if !w.opts.Recursive {
		if err := w.fsw.Add(root); err != nil {
			tuilog.Log.Warn("cannot watch directory", "dir", root, "error", err)
		}
		return
	}
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && !w.opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			tuilog.Log.Warn("cannot watch directory", "dir", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return w.opts.IncludeHidden || !strings.HasPrefix(filepath.Base(ev.Name), ".")
}

func (w *Watcher) loop(ctx context.Context, out chan<- []Item) {
	defer close(out)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if w.opts.Recursive && ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.add(ev.Name)
				}
			}
			tuilog.Log.Debug("media change", "path", ev.Name, "op", ev.Op)
			timer.Reset(w.debounce)

		case <-timer.C:
			items, err := Scan(ctx, w.paths, w.opts)
			if err != nil {
				tuilog.Log.Error("rescan failed", "error", err)
				continue
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			case <-w.done:
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			tuilog.Log.Error("watcher error", "error", err)

		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
