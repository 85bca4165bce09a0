package allocator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// debugToggles is the on-disk shape of a debug config file watched by
// DebugWatcher.
type debugToggles struct {
	FillOnFree       bool `json:"fill_on_free"`
	TrackAllocations bool `json:"track_allocations"`
}

// DebugWatcher hot-reloads a pool's debug toggles — orthogonal observers
// pluggable into the block lifecycle — from a JSON file, without
// restarting the process. It is entirely optional — nothing in the
// allocator requires one — and is meant for long-lived services that
// want to flip on allocation tracking or free-pattern poisoning against
// a running process.
type DebugWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	mu  sync.Mutex
	cfg *Config

	done chan struct{}
}

// WatchDebugConfig starts watching path for changes and applies its
// contents to cfg on every write. The initial contents of path, if it
// exists, are applied immediately.
func WatchDebugConfig(path string, cfg *Config) (*DebugWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	dw := &DebugWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		cfg:     cfg,
		done:    make(chan struct{}),
	}

	dw.reload()

	go dw.loop()

	return dw, nil
}

func (dw *DebugWatcher) loop() {
	for {
		select {
		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(ev.Name) == dw.path && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				dw.reload()
			}
		case _, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
		case <-dw.done:
			return
		}
	}
}

func (dw *DebugWatcher) reload() {
	data, err := os.ReadFile(dw.path)
	if err != nil {
		return
	}

	var t debugToggles
	if err := json.Unmarshal(data, &t); err != nil {
		return
	}

	dw.mu.Lock()
	dw.cfg.FillOnFree = t.FillOnFree
	dw.cfg.TrackAllocations = t.TrackAllocations
	dw.mu.Unlock()
}

// Close stops the watcher.
func (dw *DebugWatcher) Close() error {
	close(dw.done)
	return dw.watcher.Close()
}
