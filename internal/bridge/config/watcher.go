package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when a closed watcher is reused.
var ErrWatcherClosed = errors.New("config watcher is closed")

// ReloadFunc is called with the newly loaded configuration after the
// watched file changes. Files that fail to load or validate do not trigger
// a callback.
type ReloadFunc func(cfg Config)

// ErrorFunc is called for watch or reload errors. Errors never stop the
// watcher.
type ErrorFunc func(err error)

// Watcher reloads the config file when it changes on disk. Rapid successive
// writes (editors typically write twice) are coalesced with a short
// debounce.
type Watcher struct {
	path     string
	reload   ReloadFunc
	onError  ErrorFunc
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the event coalescing window.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorFunc sets the error callback.
func WithErrorFunc(fn ErrorFunc) WatchOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watch starts watching a config file for changes. The containing directory
// is watched rather than the file itself so atomic rename-style saves are
// seen.
func Watch(path string, reload ReloadFunc, opts ...WatchOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		reload:   reload,
		debounce: 100 * time.Millisecond,
		watcher:  fsw,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.processLoop()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.doReload)
}

func (w *Watcher) doReload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	w.reload(cfg)
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
