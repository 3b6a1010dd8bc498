package display

import (
	"log/slog"
	"math"

	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gdkpixbuf/v2"

	"github.com/filamentd/filament/internal/geometry"
	"github.com/filamentd/filament/internal/render"
)

// Canvas implements render.Canvas on a cairo context. Loaded images are
// cached per popup, keyed by path and target size.
type Canvas struct {
	cr     *cairo.Context
	logger *slog.Logger

	pixbufs map[string]*gdkpixbuf.Pixbuf
}

// NewCanvas creates a canvas. SetContext must be called inside each
// draw callback before the tree is drawn.
func NewCanvas(logger *slog.Logger) *Canvas {
	if logger == nil {
		logger = slog.Default()
	}
	return &Canvas{
		logger:  logger,
		pixbufs: make(map[string]*gdkpixbuf.Pixbuf),
	}
}

// SetContext binds the cairo context of the current draw callback.
func (c *Canvas) SetContext(cr *cairo.Context) {
	c.cr = cr
}

// PushClip implements render.Canvas.
func (c *Canvas) PushClip(r geometry.Rect) {
	if c.cr == nil {
		return
	}
	c.cr.Save()
	c.cr.Rectangle(r.X, r.Y, r.Width, r.Height)
	c.cr.Clip()
}

// PopClip implements render.Canvas.
func (c *Canvas) PopClip() {
	if c.cr == nil {
		return
	}
	c.cr.Restore()
}

// FillRect implements render.Canvas.
func (c *Canvas) FillRect(r geometry.Rect, radius float64, col render.Color) {
	if c.cr == nil {
		return
	}
	c.cr.SetSourceRGBA(col.R, col.G, col.B, col.A)
	c.roundedRectPath(r, radius)
	c.cr.Fill()
}

// StrokeRect implements render.Canvas.
func (c *Canvas) StrokeRect(r geometry.Rect, col render.Color) {
	if c.cr == nil {
		return
	}
	c.cr.SetSourceRGBA(col.R, col.G, col.B, col.A)
	c.cr.SetLineWidth(1)
	c.cr.Rectangle(r.X, r.Y, r.Width, r.Height)
	c.cr.Stroke()
}

// PaintImage implements render.Canvas: the image at path is scaled into
// r, preserving aspect ratio.
func (c *Canvas) PaintImage(path string, r geometry.Rect) {
	if c.cr == nil {
		return
	}

	pixbuf := c.loadPixbuf(path, int(r.Width), int(r.Height))
	if pixbuf == nil {
		return
	}

	c.cr.Save()
	gdk.CairoSetSourcePixbuf(c.cr, pixbuf, r.X, r.Y)
	c.cr.Rectangle(r.X, r.Y, r.Width, r.Height)
	c.cr.Fill()
	c.cr.Restore()
}

func (c *Canvas) loadPixbuf(path string, width, height int) *gdkpixbuf.Pixbuf {
	if pixbuf, ok := c.pixbufs[path]; ok {
		return pixbuf
	}

	pixbuf, err := gdkpixbuf.NewPixbufFromFileAtScale(path, width, height, true)
	if err != nil {
		c.logger.Warn("failed to load image", "path", path, "error", err)
		c.pixbufs[path] = nil
		return nil
	}

	c.pixbufs[path] = pixbuf
	return pixbuf
}

// roundedRectPath traces a rectangle with rounded corners.
func (c *Canvas) roundedRectPath(r geometry.Rect, radius float64) {
	if radius <= 0 {
		c.cr.Rectangle(r.X, r.Y, r.Width, r.Height)
		return
	}

	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)

	c.cr.NewPath()
	c.cr.Arc(r.Right()-radius, r.Top()+radius, radius, -math.Pi/2, 0)
	c.cr.Arc(r.Right()-radius, r.Bottom()-radius, radius, 0, math.Pi/2)
	c.cr.Arc(r.Left()+radius, r.Bottom()-radius, radius, math.Pi/2, math.Pi)
	c.cr.Arc(r.Left()+radius, r.Top()+radius, radius, math.Pi, 3*math.Pi/2)
	c.cr.ClosePath()
}
