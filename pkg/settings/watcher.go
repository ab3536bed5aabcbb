package settings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the settings file for changes and reloads the store.
// Change events are debounced so that editors that write in multiple steps
// (truncate + write + rename) trigger a single reload.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	running bool
}

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// DebounceInterval is how long to wait after the last change event
	// before reloading. Default: 100ms.
	DebounceInterval time.Duration
}

// NewWatcher creates a watcher for the store's settings file.
// The store must have a non-empty path.
func NewWatcher(store *Store, cfg WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if store.Path() == "" {
		return nil, fmt.Errorf("settings store has no file to watch")
	}
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		store:    store,
		watcher:  fsw,
		logger:   logger.With("component", "settings.watcher"),
		debounce: cfg.DebounceInterval,
	}, nil
}

// Watch blocks, reloading the store whenever the settings file changes,
// until the context is cancelled.
//
// The parent directory is watched rather than the file itself so that
// rename-based saves keep working after the original inode disappears.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("watching settings file", "path", w.store.Path())

	target := filepath.Clean(w.store.Path())
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				// The timer may have fired with its tick still queued;
				// drain it so Reset arms a single clean window.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.store.Reload(); err != nil {
				w.logger.Error("settings reload failed", "path", w.store.Path(), "error", err)
				continue
			}
			w.logger.Info("settings reloaded", "path", w.store.Path())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("settings watcher error", "error", err)
		}
	}
}
