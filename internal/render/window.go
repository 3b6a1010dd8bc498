package render

import (
	"log/slog"
	"time"

	"github.com/filamentd/filament/internal/geometry"
)

// UpdateMode is a bitmask of the per-frame work a window performs.
type UpdateMode uint8

const (
	// UpdateModeDraw advances block animation state each frame.
	UpdateModeDraw UpdateMode = 1 << iota
	// UpdateModeFuse counts the window's time-to-live down each frame.
	UpdateModeFuse
)

// UpdateModeAll enables both drawing and the fuse.
const UpdateModeAll = UpdateModeDraw | UpdateModeFuse

// Surface is the backing the window driver renders into: resizable once
// at init, redraw-requestable every frame.
type Surface interface {
	Resize(width, height float64)
	RequestRedraw()
}

// Window drives one layout tree for one open notification: it runs the
// single initialization pass, then the per-frame update/draw cycle until
// the fuse expires or the notification is dismissed.
type Window struct {
	layout  *Block
	env     *Env
	surface Surface
	logger  *slog.Logger

	innerRect    geometry.Rect
	masterOffset geometry.Vec2

	fuse             int64 // remaining time-to-live in milliseconds
	mode             UpdateMode
	markedForDestroy bool
}

// NewWindow builds a window around an initialized-on-the-spot layout
// tree. The tree must be freshly built for this window (trees are never
// shared across windows). timeout is the time-to-live in milliseconds; a
// non-positive timeout disables the fuse so the window lives until
// dismissed.
//
// The initialization pass runs here: the whole tree's bounding rect is
// predicted against an empty parent rect, the surface is resized to it,
// and a master offset is recorded when the rect's origin is negative so
// every draw lands in positive window coordinates.
func NewWindow(layout *Block, env *Env, surface Surface, timeout int64, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Window{
		layout:  layout,
		env:     env,
		surface: surface,
		logger:  logger,
		fuse:    timeout,
		mode:    UpdateModeAll,
	}
	if timeout <= 0 {
		w.mode = UpdateModeDraw
	}

	rect := layout.PredictTreeAndInit(geometry.Rect{}, env)

	w.innerRect = geometry.NewRect(0, 0, rect.Width, rect.Height)
	w.masterOffset = geometry.NewVec2(-rect.X, -rect.Y)
	surface.Resize(rect.Width, rect.Height)

	logger.Debug("window initialized",
		"width", rect.Width,
		"height", rect.Height,
		"master_offset_x", w.masterOffset.X,
		"master_offset_y", w.masterOffset.Y,
		"fuse_ms", timeout,
	)

	return w
}

// Update advances the window by elapsed time and reports whether a
// redraw was requested. The fuse runs first: a window past its
// time-to-live is marked for destruction and skips animation, since its
// drawing would be discarded anyway.
func (w *Window) Update(elapsed time.Duration) bool {
	dirty := false

	if w.mode&UpdateModeFuse != 0 {
		w.fuse -= elapsed.Milliseconds()
		if w.fuse <= 0 {
			w.markedForDestroy = true
			return true
		}
	}

	if w.mode&UpdateModeDraw != 0 {
		dirty = w.layout.UpdateTree(elapsed, w.env)
	}

	if dirty {
		w.surface.RequestRedraw()
	}
	return dirty
}

// Draw renders the whole tree. The root parent rect is the window's
// inner rect shifted by the master offset, which pulls blocks that
// expanded left or up back onto the canvas. Draw never mutates
// animation state.
func (w *Window) Draw() {
	inner := w.innerRect
	inner.SetXY(w.masterOffset.X, w.masterOffset.Y)
	w.layout.DrawTree(inner, w.env)
}

// MarkedForDestroy reports whether the fuse has expired or the window
// was dismissed.
func (w *Window) MarkedForDestroy() bool { return w.markedForDestroy }

// Dismiss marks the window for destruction regardless of the fuse.
func (w *Window) Dismiss() { w.markedForDestroy = true }

// Fuse returns the remaining time-to-live in milliseconds.
func (w *Window) Fuse() int64 { return w.fuse }

// MasterOffset returns the translation applied to the tree every draw.
func (w *Window) MasterOffset() geometry.Vec2 { return w.masterOffset }

// Size returns the window's inner size as computed at init.
func (w *Window) Size() (width, height float64) {
	return w.innerRect.Width, w.innerRect.Height
}

// SetMode replaces the update mode bitmask. Clearing UpdateModeFuse
// pauses expiry (e.g. while the pointer hovers the popup); clearing
// UpdateModeDraw freezes animation.
func (w *Window) SetMode(mode UpdateMode) { w.mode = mode }

// Mode returns the active update mode bitmask.
func (w *Window) Mode() UpdateMode { return w.mode }

// Layout exposes the root block, used by layout dumps and tests.
func (w *Window) Layout() *Block { return w.layout }
