package display

import (
	"log/slog"
	"time"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/filamentd/filament/internal/config"
	"github.com/filamentd/filament/internal/dbus"
	"github.com/filamentd/filament/internal/layout"
	"github.com/filamentd/filament/internal/model"
	"github.com/filamentd/filament/internal/render"
)

// Popup is one notification window: a layer-shell surface whose content
// is drawn entirely by the layout engine onto a DrawingArea.
type Popup struct {
	window *gtk.Window
	area   *gtk.DrawingArea
	text   *PangoText
	canvas *Canvas
	engine *render.Window

	notification *model.Notification
	cfg          *config.Config
	logger       *slog.Logger

	onClose func(reason dbus.CloseReason)
	onHover func(hovering bool)

	width  float64
	height float64
	closed bool
}

// NewPopup builds a popup for a notification from a layout template.
// The engine's initialization pass runs here, sizing the surface before
// it is first presented.
func NewPopup(app *gtk.Application, n *model.Notification, tpl *layout.Template, cfg *config.Config, logger *slog.Logger) *Popup {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Popup{
		notification: n,
		cfg:          cfg,
		logger:       logger,
		text:         NewPangoText(),
		canvas:       NewCanvas(logger),
	}

	p.window = gtk.NewWindow()
	p.window.SetApplication(app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)

	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(p.window, 0)
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, "filament-notification")

	p.area = gtk.NewDrawingArea()
	p.area.SetDrawFunc(p.draw)
	p.window.SetChild(p.area)

	env := &render.Env{
		Notification: n,
		Text:         p.text,
		Canvas:       p.canvas,
		Debug:        cfg.Display.Debug,
	}
	p.engine = render.NewWindow(tpl.Build(), env, p, resolveTimeout(n, cfg), logger)

	p.connectSignals()
	return p
}

// resolveTimeout maps the notification's requested expiry onto the
// engine fuse: a positive request wins, an explicit zero means never,
// and the server default applies otherwise.
func resolveTimeout(n *model.Notification, cfg *config.Config) int64 {
	switch {
	case n.Timeout > 0:
		return int64(n.Timeout)
	case n.Timeout == 0:
		return 0
	default:
		return cfg.TimeoutForUrgency(n.Urgency)
	}
}

// Resize implements render.Surface.
func (p *Popup) Resize(width, height float64) {
	p.width = width
	p.height = height
	p.area.SetContentWidth(int(width))
	p.area.SetContentHeight(int(height))
	p.window.SetDefaultSize(int(width), int(height))
}

// RequestRedraw implements render.Surface.
func (p *Popup) RequestRedraw() {
	p.area.QueueDraw()
}

func (p *Popup) draw(_ *gtk.DrawingArea, cr *cairo.Context, _, _ int) {
	p.text.SetContext(cr)
	p.canvas.SetContext(cr)
	p.engine.Draw()
	p.text.SetContext(nil)
	p.canvas.SetContext(nil)
}

func (p *Popup) connectSignals() {
	click := gtk.NewGestureClick()
	click.ConnectReleased(func(_ int, _, _ float64) {
		if p.onClose != nil {
			p.onClose(dbus.CloseReasonDismissed)
		}
	})
	p.area.AddController(click)

	if p.cfg.Behavior.PauseOnHover {
		motion := gtk.NewEventControllerMotion()
		motion.ConnectEnter(func(_, _ float64) { p.setHover(true) })
		motion.ConnectLeave(func() { p.setHover(false) })
		p.area.AddController(motion)
	}
}

// setHover pauses the fuse while the pointer is over the popup.
// Animation keeps running unless idle_animate is disabled.
func (p *Popup) setHover(hovering bool) {
	if hovering {
		mode := render.UpdateModeDraw
		if !p.cfg.Behavior.IdleAnimate {
			mode = 0
		}
		p.engine.SetMode(mode)
	} else if p.engine.Fuse() > 0 {
		p.engine.SetMode(render.UpdateModeAll)
	} else {
		p.engine.SetMode(render.UpdateModeDraw)
	}

	if p.onHover != nil {
		p.onHover(hovering)
	}
}

// OnClose sets the callback invoked when the user dismisses the popup.
func (p *Popup) OnClose(cb func(reason dbus.CloseReason)) {
	p.onClose = cb
}

// OnHover sets the callback invoked on pointer enter and leave.
func (p *Popup) OnHover(cb func(hovering bool)) {
	p.onHover = cb
}

// Show anchors the popup at its stack offset and presents it.
func (p *Popup) Show(stackOffset int) {
	p.Position(stackOffset)
	p.window.SetVisible(true)
}

// Position anchors the popup to the configured screen corner,
// stackOffset pixels in from the stacking edge.
func (p *Popup) Position(stackOffset int) {
	offsetX := p.cfg.Display.OffsetX
	offsetY := p.cfg.Display.OffsetY + stackOffset

	for _, edge := range []layershell.LayerShellEdge{
		layershell.LayerShellEdgeTop,
		layershell.LayerShellEdgeBottom,
		layershell.LayerShellEdgeLeft,
		layershell.LayerShellEdgeRight,
	} {
		layershell.SetAnchor(p.window, edge, false)
	}

	switch config.Position(p.cfg.Display.Position) {
	case config.PositionTopLeft:
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, offsetY)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeLeft, offsetX)
	case config.PositionBottomLeft:
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeBottom, true)
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeBottom, offsetY)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeLeft, offsetX)
	case config.PositionBottomRight:
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeBottom, true)
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeBottom, offsetY)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeRight, offsetX)
	default: // top-right
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, offsetY)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeRight, offsetX)
	}
}

// Update advances the popup's animation and fuse by elapsed time and
// reports whether it has expired.
func (p *Popup) Update(elapsed time.Duration) (expired bool) {
	p.engine.Update(elapsed)
	return p.engine.MarkedForDestroy()
}

// Height returns the popup's pixel height as sized at init.
func (p *Popup) Height() int {
	return int(p.height)
}

// Notification returns the notification this popup renders.
func (p *Popup) Notification() *model.Notification {
	return p.notification
}

// Close destroys the popup window. Safe to call more than once.
func (p *Popup) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.engine.Dismiss()
	p.window.Close()
	p.window.Destroy()
}
