package audio

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher drops cached sound buffers when the files behind them change
// on disk, so the next notification plays the new audio. It watches
// the parent directories of the configured sound set rather than the
// files themselves: editor saves and atomic renames both land as
// directory events.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger
	player *Player

	sounds map[string]bool // configured sound file paths
	dirs   map[string]bool // their parent directories

	fsw     *fsnotify.Watcher
	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher that invalidates entries in the player's
// decode cache.
func NewWatcher(player *Player, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger: logger,
		player: player,
		sounds: make(map[string]bool),
		dirs:   make(map[string]bool),
	}
}

// SetSounds replaces the watched sound set. Empty paths are skipped.
// Directories of newly configured sounds are picked up immediately when
// the watcher is already running.
func (w *Watcher) SetSounds(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sounds = make(map[string]bool, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		w.sounds[path] = true
		w.addDirLocked(filepath.Dir(path))
	}
}

// addDirLocked registers a parent directory. Directories of sounds
// dropped from the config stay registered; events for them no longer
// match anything in the sound set.
func (w *Watcher) addDirLocked(dir string) {
	if w.dirs[dir] {
		return
	}
	w.dirs[dir] = true

	if w.fsw != nil {
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Warn("failed to watch sound directory", "dir", dir, "error", err)
		}
	}
}

// Start begins watching. Safe to call with sounds set before or after.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("failed to watch sound directory", "dir", dir, "error", err)
		}
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.running = true

	go w.loop(ctx, fsw, w.done)

	w.logger.Debug("sound watcher started", "sounds", len(w.sounds))
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			w.mu.Lock()
			configured := w.sounds[event.Name]
			w.mu.Unlock()
			if !configured {
				continue
			}

			w.logger.Debug("sound file changed, dropping cached buffer", "path", event.Name)
			w.player.InvalidateCache(event.Name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("sound watcher error", "error", err)

		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.done)
	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("error closing sound watcher", "error", err)
	}
	w.fsw = nil

	w.logger.Debug("sound watcher stopped")
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
