package display

import (
	"container/list"
	"log/slog"
	"sync"
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/filamentd/filament/internal/config"
	"github.com/filamentd/filament/internal/dbus"
	"github.com/filamentd/filament/internal/layout"
	"github.com/filamentd/filament/internal/model"
)

// frameInterval is the popup animation tick, roughly 60 fps.
const frameInterval = 16 * time.Millisecond

// CloseCallback is called when a popup leaves the screen.
type CloseCallback func(busID uint32, reason dbus.CloseReason)

// popupState tracks one visible popup.
type popupState struct {
	busID        uint32
	popup        *Popup
	notification *model.Notification
	createdAt    time.Time
}

// Manager owns the visible popups: it creates at most MaxVisible GTK
// windows, queues the overflow, stacks popups in the configured corner
// and drives every popup's animation from one frame tick.
type Manager struct {
	app    *gtk.Application
	cfg    *config.Config
	loader *layout.Loader
	logger *slog.Logger

	mu     sync.Mutex
	popups map[uint32]*popupState
	order  []uint32 // stacking order, oldest first

	queue      *list.List // of *model.Notification
	queueIndex map[uint32]*list.Element

	onClose CloseCallback

	stopCh   chan struct{}
	lastTick time.Time
	running  bool
}

// NewManager creates a display manager.
func NewManager(app *gtk.Application, cfg *config.Config, loader *layout.Loader, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		app:        app,
		cfg:        cfg,
		loader:     loader,
		logger:     logger,
		popups:     make(map[uint32]*popupState),
		queue:      list.New(),
		queueIndex: make(map[uint32]*list.Element),
	}
}

// SetCloseCallback sets the callback for popup close events.
func (m *Manager) SetCloseCallback(cb CloseCallback) {
	m.onClose = cb
}

// Start begins the frame tick on the GTK main loop.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}
	m.running = true
	m.lastTick = time.Now()
	m.stopCh = make(chan struct{})
	go m.tickLoop(m.stopCh)

	m.logger.Info("display manager started", "position", m.cfg.Display.Position)
	return nil
}

// tickLoop runs off the main loop and schedules each animation frame
// onto it.
func (m *Manager) tickLoop(stop chan struct{}) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			glib.IdleAdd(m.tick)
		}
	}
}

// Stop cancels the frame tick and closes every popup.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	m.queue.Init()
	m.queueIndex = make(map[uint32]*list.Element)
	m.mu.Unlock()

	m.CloseAll(dbus.CloseReasonClosed)
	m.logger.Info("display manager stopped")
}

// Show displays a notification, replacing any popup with the same bus
// id. Beyond MaxVisible popups it is queued until space frees up.
func (m *Manager) Show(n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Replacement: same bus id swaps content in place of the old popup.
	if state, exists := m.popups[n.BusID]; exists {
		state.popup.Close()
		m.removeLocked(n.BusID)
		return m.showLocked(n)
	}
	if elem, exists := m.queueIndex[n.BusID]; exists {
		elem.Value = n
		return nil
	}

	if len(m.popups) < m.cfg.Display.MaxVisible {
		return m.showLocked(n)
	}

	m.queueIndex[n.BusID] = m.queue.PushBack(n)
	m.logger.Debug("queued notification", "bus_id", n.BusID, "queue_size", m.queue.Len())
	return nil
}

// showLocked creates and presents a popup. Caller holds the lock.
func (m *Manager) showLocked(n *model.Notification) error {
	tpl, err := m.loader.Load(m.cfg.Layout.Template)
	if err != nil {
		return err
	}

	popup := NewPopup(m.app, n, tpl, m.cfg, m.logger)
	popup.OnClose(func(reason dbus.CloseReason) {
		m.Close(n.BusID, reason)
	})

	m.popups[n.BusID] = &popupState{
		busID:        n.BusID,
		popup:        popup,
		notification: n,
		createdAt:    time.Now(),
	}
	m.order = append(m.order, n.BusID)

	popup.Show(m.stackOffsetLocked(n.BusID))

	m.logger.Debug("popup shown",
		"bus_id", n.BusID,
		"app_name", n.AppName,
		"urgency", n.UrgencyName(),
	)
	return nil
}

// stackOffsetLocked returns the pixel offset of a popup from the
// stacking edge: the heights of everything above it plus gaps.
func (m *Manager) stackOffsetLocked(busID uint32) int {
	offset := 0
	for _, id := range m.order {
		if id == busID {
			return offset
		}
		if state, ok := m.popups[id]; ok {
			offset += state.popup.Height() + m.cfg.Display.Gap
		}
	}
	return offset
}

// restackLocked repositions every popup after one leaves the stack.
func (m *Manager) restackLocked() {
	for _, id := range m.order {
		if state, ok := m.popups[id]; ok {
			state.popup.Position(m.stackOffsetLocked(id))
		}
	}
}

func (m *Manager) removeLocked(busID uint32) {
	delete(m.popups, busID)
	for i, id := range m.order {
		if id == busID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Close removes a popup and reports the reason through the close
// callback.
func (m *Manager) Close(busID uint32, reason dbus.CloseReason) {
	m.mu.Lock()

	if elem, exists := m.queueIndex[busID]; exists {
		m.queue.Remove(elem)
		delete(m.queueIndex, busID)
		m.mu.Unlock()
		if m.onClose != nil {
			m.onClose(busID, reason)
		}
		return
	}

	state, exists := m.popups[busID]
	if !exists {
		m.mu.Unlock()
		return
	}
	state.popup.Close()
	m.removeLocked(busID)
	m.restackLocked()
	m.drainQueueLocked()
	m.mu.Unlock()

	m.logger.Debug("popup closed", "bus_id", busID, "reason", reason.String())
	if m.onClose != nil {
		m.onClose(busID, reason)
	}
}

// CloseAll dismisses every visible and queued notification.
func (m *Manager) CloseAll(reason dbus.CloseReason) {
	m.mu.Lock()
	ids := make([]uint32, 0, len(m.popups)+m.queue.Len())
	ids = append(ids, m.order...)
	for id := range m.queueIndex {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Close(id, reason)
	}
}

// VisibleCount returns the number of popups on screen.
func (m *Manager) VisibleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.popups)
}

// drainQueueLocked promotes queued notifications into freed slots.
func (m *Manager) drainQueueLocked() {
	for len(m.popups) < m.cfg.Display.MaxVisible && m.queue.Len() > 0 {
		elem := m.queue.Front()
		n := elem.Value.(*model.Notification)
		m.queue.Remove(elem)
		delete(m.queueIndex, n.BusID)

		if err := m.showLocked(n); err != nil {
			m.logger.Error("failed to show queued notification", "bus_id", n.BusID, "error", err)
		}
	}
}

// tick runs on the GTK main loop: it advances every popup by the real
// elapsed time and expires the ones whose fuse ran out.
func (m *Manager) tick() {
	now := time.Now()
	elapsed := now.Sub(m.lastTick)
	m.lastTick = now

	m.mu.Lock()
	var expired []uint32
	for id, state := range m.popups {
		if state.popup.Update(elapsed) {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.Close(id, dbus.CloseReasonExpired)
	}
}

// UpdateConfig swaps in a hot-reloaded configuration. Open popups keep
// their old appearance; new popups use the new settings.
func (m *Manager) UpdateConfig(cfg *config.Config, loader *layout.Loader) {
	m.mu.Lock()
	m.cfg = cfg
	m.loader = loader
	m.mu.Unlock()

	m.logger.Debug("display manager config updated")
}
