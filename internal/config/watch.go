package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Config from its YAML file whenever the file
// changes on disk, handing the new value to a callback. It never
// mutates a Config in place — each reload produces a fresh value so
// callers can swap it in atomically.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	stop    chan struct{}
}

// NewWatcher starts watching the file at path itself (not its
// directory) for writes. path must already have been validated by a prior
// LoadWithFile call.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: new watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	return &Watcher{path: path, watcher: fsw, stop: make(chan struct{})}, nil
}

// Start runs the reload loop until ctx is cancelled or Stop is
// called. onReload is invoked with the freshly loaded Config after
// every write event; load errors are passed to onError instead and
// do not stop the loop.
func (w *Watcher) Start(ctx context.Context, onReload func(*Config), onError func(error)) {
	go func() {
		for {
			select {
			case <-w.stop:
				return
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := LoadWithFile(w.path)
				if err != nil {
					if onError != nil {
						onError(err)
					}
					continue
				}
				if onReload != nil {
					onReload(cfg)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
}

// Stop halts the reload loop and releases the underlying filesystem
// watch.
func (w *Watcher) Stop() {
	select {
	case <-w.stop:
		return
	default:
		close(w.stop)
		w.watcher.Close()
	}
}
