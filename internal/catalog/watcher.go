package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a fixture file must stay unchanged before it
// is imported. Uploads and editor saves arrive as bursts of writes, so
// reacting to the first event would read a half-written file.
const settleDelay = 500 * time.Millisecond

// Watcher monitors the import directory and feeds settled fixture
// files to the loader.
type Watcher struct {
	loader  *Loader
	dir     string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	pending map[string]*time.Timer
	mu      sync.Mutex
}

// NewWatcher creates a watcher over the given import directory,
// creating it if needed.
func NewWatcher(loader *Loader, dir string, logger *slog.Logger) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		loader:  loader,
		dir:     dir,
		logger:  logger,
		watcher: fsw,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Start processes events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("watching import directory", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Stop releases watcher resources and cancels pending imports.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext != ".json" && ext != ".csv" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Restart the settle timer on every write burst.
	if timer, exists := w.pending[event.Name]; exists {
		timer.Stop()
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if _, err := w.loader.LoadFile(ctx, path); err != nil {
			w.logger.Error("fixture import failed", "path", path, "error", err)
		}
	})
}
