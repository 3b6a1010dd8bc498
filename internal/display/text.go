package display

import (
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/pango"
	"github.com/diamondburned/gotk4/pkg/pangocairo"

	"github.com/filamentd/filament/internal/geometry"
	"github.com/filamentd/filament/internal/render"
)

// PangoText measures and paints text with Pango. One instance belongs
// to one popup: measurement happens against a standalone Pango context
// at init time, painting against the cairo context of the current draw
// callback.
type PangoText struct {
	layout *pango.Layout
	cr     *cairo.Context
}

// NewPangoText creates a text renderer with its own Pango context from
// the default cairo font map, so measurement works before the popup's
// first draw.
func NewPangoText() *PangoText {
	ctx := pangocairo.FontMapGetDefault().CreateContext()
	return &PangoText{layout: pango.NewLayout(ctx)}
}

// SetContext binds the cairo context of the current draw callback.
// Valid only for the duration of that callback.
func (t *PangoText) SetContext(cr *cairo.Context) {
	t.cr = cr
}

// SetText implements render.TextRenderer.
func (t *PangoText) SetText(text, font string, maxWidth, maxHeight int, mode render.EllipsizeMode) {
	t.layout.SetFontDescription(pango.NewFontDescriptionFromString(font))
	t.layout.SetText(text, -1)

	if maxWidth < 0 {
		t.layout.SetWidth(-1)
	} else {
		t.layout.SetWidth(maxWidth * pango.SCALE)
	}
	// A max height of 0 keeps the text to a single line.
	if maxHeight < 0 {
		t.layout.SetHeight(-1)
	} else {
		t.layout.SetHeight(maxHeight * pango.SCALE)
	}

	t.layout.SetEllipsize(ellipsizeMode(mode))
}

func ellipsizeMode(mode render.EllipsizeMode) pango.EllipsizeMode {
	switch mode {
	case render.EllipsizeStart:
		return pango.EllipsizeStart
	case render.EllipsizeMiddle:
		return pango.EllipsizeMiddle
	case render.EllipsizeEnd:
		return pango.EllipsizeEnd
	default:
		return pango.EllipsizeNone
	}
}

// SizedRect implements render.TextRenderer.
func (t *PangoText) SizedRect(minWidth, minHeight int) geometry.Rect {
	width, height := t.layout.PixelSize()
	return geometry.NewRect(0, 0,
		max(float64(width), float64(minWidth)),
		max(float64(height), float64(minHeight)))
}

// SizedPaddedRect implements render.TextRenderer.
func (t *PangoText) SizedPaddedRect(pad geometry.Padding, minWidth, minHeight int) geometry.Rect {
	return t.SizedRect(minWidth, minHeight).Pad(pad)
}

// Paint implements render.TextRenderer.
func (t *PangoText) Paint(pos geometry.Vec2, col render.Color) {
	if t.cr == nil {
		return
	}
	t.cr.SetSourceRGBA(col.R, col.G, col.B, col.A)
	t.cr.MoveTo(pos.X, pos.Y)
	pangocairo.ShowLayout(t.cr, t.layout)
}

// PaintPadded implements render.TextRenderer.
func (t *PangoText) PaintPadded(pos geometry.Vec2, col render.Color, pad geometry.Padding) {
	t.Paint(geometry.NewVec2(pos.X+pad.Left, pos.Y+pad.Top), col)
}
