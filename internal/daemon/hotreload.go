package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches the configuration file for changes so settings
// apply without restarting the daemon.
type ConfigWatcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	cfgPath  string
	onChange func()

	watcher *fsnotify.Watcher
	done    chan struct{}
	running bool
}

// NewConfigWatcher creates a watcher for the given config file path.
func NewConfigWatcher(cfgPath string, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigWatcher{
		logger:  logger,
		cfgPath: cfgPath,
	}
}

// SetChangeCallback sets the callback invoked after the file changes.
func (w *ConfigWatcher) SetChangeCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins watching. The parent directory is watched rather than
// the file itself so atomic rename-saves and recreated files are seen.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.cfgPath)); err != nil {
		watcher.Close()
		return err
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	w.running = true

	go w.watch(ctx)

	w.logger.Debug("config watcher started", "path", w.cfgPath)
	return nil
}

func (w *ConfigWatcher) watch(ctx context.Context) {
	filename := filepath.Base(w.cfgPath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("config file changed", "file", w.cfgPath)
				w.mu.Lock()
				callback := w.onChange
				w.mu.Unlock()
				if callback != nil {
					callback()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.done)
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("error closing config watcher", "error", err)
	}
	w.logger.Debug("config watcher stopped")
}
