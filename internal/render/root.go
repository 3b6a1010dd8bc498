package render

import (
	"time"

	"github.com/filamentd/filament/internal/geometry"
)

// RootElement is the background container every layout tree hangs off.
// Its own rect is the configured minimum window size; children anchor to
// it and may extend the total tree rect in any direction. Draw fills the
// whole canvas with the background color, so the painted area always
// covers the final window size rather than just the minimum rect.
type RootElement struct {
	Color     Color
	Rounding  float64
	MinWidth  float64
	MinHeight float64

	rect geometry.Rect
}

// PredictRectAndInit anchors the minimum-size rect.
func (r *RootElement) PredictRectAndInit(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, _ *Env) geometry.Rect {
	rect := geometry.NewRect(0, 0, r.MinWidth, r.MinHeight)
	pos := FindAnchorPos(hook, offset, parentRect, rect)
	rect.SetXY(pos.X, pos.Y)
	r.rect = rect
	return rect
}

// Draw fills the background and returns the anchored minimum rect for
// children to hang off.
func (r *RootElement) Draw(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect {
	// The parent rect of the root is the window's inner rect (shifted by
	// the master offset); the background covers the full canvas.
	background := geometry.NewRect(0, 0, parentRect.Width, parentRect.Height)
	env.Canvas.FillRect(background, r.Rounding, r.Color)

	rect := r.rect
	pos := FindAnchorPos(hook, offset, parentRect, rect)
	rect.SetXY(pos.X, pos.Y)
	return rect
}

// Update is a no-op.
func (r *RootElement) Update(time.Duration, *Env) bool {
	return false
}
