package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives the freshly loaded configuration after the watched file
// changes. It is called from the watcher's goroutine.
type Handler func(Config)

// Watcher reloads the configuration when its file changes on disk.
// Editors save through rename-and-replace as often as in-place writes, so
// the watcher monitors the directory and filters for the file name.
type Watcher struct {
	path     string
	debounce time.Duration

	mu       sync.Mutex
	handlers []Handler

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for the config file at path. Call Start to
// begin watching.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     abs,
		debounce: 100 * time.Millisecond,
	}, nil
}

// OnReload registers a handler for configuration reloads.
func (w *Watcher) OnReload(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Start begins watching the config file's directory.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw
	w.done = make(chan struct{})
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop stops watching. Safe to call when never started.
func (w *Watcher) Stop() {
	if w.fsw == nil {
		return
	}
	close(w.done)
	w.fsw.Close()
	w.wg.Wait()
	w.fsw = nil
}

// loop coalesces bursts of filesystem events into one reload per save.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.reload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Keep running with the previous configuration.
		return
	}
	w.mu.Lock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()
	for _, h := range handlers {
		h(cfg)
	}
}
