package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor save bursts into a single reload.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads a settings file when it changes on disk and delivers the
// result to a callback. Editors that write via rename are handled by
// watching the parent directory.
type Watcher struct {
	path     string
	onChange func(Settings)

	fw   *fsnotify.Watcher
	done chan struct{}

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewWatcher starts watching the settings file at path. The callback runs
// on the watcher's goroutine with the freshly loaded settings; load errors
// are dropped silently and the previous settings stay in effect.
func NewWatcher(path string, onChange func(Settings)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		onChange: onChange,
		fw:       fw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	w.mu.Unlock()
	return w.fw.Close()
}

// loop consumes filesystem events until Close.
func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

// scheduleReload debounces a reload of the settings file.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		s, err := Load(w.path)
		if err != nil {
			return
		}
		w.onChange(s)
	})
}
