package audio

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"

	"github.com/filamentd/filament/internal/config"
	"github.com/filamentd/filament/internal/model"
)

// Manager ties sound playback to notifications: per-urgency sounds from
// the configuration, overridden by a notification's sound-file hint.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  *Player
	watcher *Watcher
	cfg     *config.Config

	sounds map[int]string
}

// NewManager creates an audio manager from the daemon configuration.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	player := NewPlayer(logger)
	m := &Manager{
		logger:  logger,
		player:  player,
		watcher: NewWatcher(player, logger),
		cfg:     cfg,
		sounds:  make(map[int]string),
	}
	m.loadSounds()
	return m
}

func (m *Manager) loadSounds() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.Audio.Volume > 0 {
		m.player.SetVolume(float64(m.cfg.Audio.Volume) / 100.0)
	}

	m.sounds = make(map[int]string)
	for _, urgency := range []int{model.UrgencyLow, model.UrgencyNormal, model.UrgencyCritical} {
		path := m.cfg.SoundForUrgency(urgency)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("sound file not found", "urgency", urgency, "path", path)
			continue
		}
		m.sounds[urgency] = path
		m.logger.Debug("loaded sound", "urgency", urgency, "path", path)
	}
}

// Start preloads the configured sounds and starts the change watcher.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.RLock()
	sounds := make(map[int]string, len(m.sounds))
	maps.Copy(sounds, m.sounds)
	m.mu.RUnlock()

	paths := make([]string, 0, len(sounds))
	for _, path := range sounds {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
		paths = append(paths, path)
	}

	m.watcher.SetSounds(paths)
	if err := m.watcher.Start(ctx); err != nil {
		return err
	}

	m.logger.Info("audio manager started", "sounds", len(sounds))
	return nil
}

// Stop shuts down the watcher and the player.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// PlayFor plays the sound for a notification: its sound-file hint when
// present, otherwise the sound configured for its urgency. suppressed
// reflects the suppress-sound hint.
func (m *Manager) PlayFor(n *model.Notification, soundFile string, suppressed bool) error {
	m.mu.RLock()
	enabled := m.cfg.Audio.Enabled
	path, ok := m.sounds[n.Urgency]
	m.mu.RUnlock()

	if !enabled || suppressed {
		return nil
	}

	if soundFile != "" {
		return m.player.Play(soundFile)
	}
	if !ok {
		m.logger.Debug("no sound configured for urgency", "urgency", n.Urgency)
		return nil
	}
	return m.player.Play(path)
}

// SetVolume sets the playback volume, in [0, 1].
func (m *Manager) SetVolume(volume float64) {
	m.player.SetVolume(volume)
}

// UpdateConfig swaps in a hot-reloaded configuration and reloads the
// sound set.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()

	m.player.ClearCache()
	m.loadSounds()

	m.mu.RLock()
	sounds := make(map[int]string, len(m.sounds))
	maps.Copy(sounds, m.sounds)
	m.mu.RUnlock()

	paths := make([]string, 0, len(sounds))
	for _, path := range sounds {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound on reload", "path", path, "error", err)
		}
		paths = append(paths, path)
	}
	m.watcher.SetSounds(paths)

	m.logger.Debug("audio manager reloaded")
}
