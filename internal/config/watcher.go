package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bovan/import-sorter/internal/event"
	"github.com/bovan/import-sorter/internal/logging"
)

// Watcher announces changes to the project configuration file on the event
// bus so hosts can refresh anything derived from it. Resolution itself never
// caches, so the watcher is purely a notification aid.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	bus     *event.Bus
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	mu      sync.Mutex
}

// NewWatcher creates a watcher for the resolver's configured file path.
// The containing directory is watched rather than the file itself; editors
// that write via rename would otherwise silently detach the watch.
func NewWatcher(resolver *Resolver, bus *event.Bus) (*Watcher, error) {
	pres := resolver.Presence()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(pres.Path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	clog := logging.Component("config-watcher")
	clog.Debug().Str("path", pres.Path).Msg("watching configuration file")

	return &Watcher{
		watcher: w,
		path:    pres.Path,
		bus:     bus,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()
	go w.run()
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.concernsConfig(ev) {
				continue
			}
			clog := logging.Component("config-watcher")
			clog.Debug().
				Str("path", w.path).
				Str("op", ev.Op.String()).
				Msg("configuration file changed")
			w.bus.Publish(event.Event{
				Type: event.ConfigChanged,
				Data: event.ConfigChangedData{Path: w.path},
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			clog := logging.Component("config-watcher")
			clog.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) concernsConfig(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

// Stop stops the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.mu.Unlock()

	close(w.stopCh)
	w.watcher.Close()
	<-w.doneCh
}
