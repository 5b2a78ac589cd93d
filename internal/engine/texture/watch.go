package texture

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/logger"
)

// Watcher reports when a single image file is written or replaced.
// It watches the parent directory so editors that save via rename are
// still seen.
type Watcher struct {
	watch   *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup

	mu   sync.Mutex
	path string
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		watch:   watch,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	if err := w.Set(path); err != nil {
		watch.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers the watched path after each change. Bursts of events
// collapse into one pending notification.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Path returns the file currently watched.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Set switches the watcher to another file.
func (w *Watcher) Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if abs == w.path {
		return nil
	}
	if err := w.watch.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if w.path != "" && filepath.Dir(w.path) != filepath.Dir(abs) {
		_ = w.watch.Remove(filepath.Dir(w.path))
	}
	w.path = abs
	return nil
}

// Close stops the watcher and closes the Changes channel.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watch.Close()
	w.wg.Wait()
	close(w.changes)
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watch.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := w.Path()
			if filepath.Clean(event.Name) != path {
				continue
			}
			select {
			case w.changes <- path:
			default:
			}
		case err, ok := <-w.watch.Errors:
			if !ok {
				return
			}
			logger.Warn("texture watcher error", zap.Error(err))
		}
	}
}
