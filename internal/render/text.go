package render

import (
	"time"

	"github.com/filamentd/filament/internal/geometry"
)

// TextElement renders a single static text block. The text is a template
// resolved against the notification at init time; the ellipsized,
// possibly size-constrained result is cached and painted every frame.
type TextElement struct {
	Padding geometry.Padding
	// Text is the template string, expanded with the notification's
	// fields (see model.Notification.Expand).
	Text  string
	Font  string
	Color Color

	Dimensions Dimensions
	// Alternative size profiles selected by image presence. Nil means
	// fall back to Dimensions.
	DimensionsImageApp  *Dimensions
	DimensionsImageHint *Dimensions
	DimensionsImageBoth *Dimensions

	Ellipsize       EllipsizeMode
	RenderWhenEmpty bool

	// Cached at init.
	realText string
	dims     Dimensions
	rect     geometry.Rect
}

// PredictRectAndInit resolves the template text, measures it under the
// selected size profile and caches the padded bounding rect.
//
// An empty resolution with RenderWhenEmpty unset still returns an
// anchored zero-size rect: other blocks may be positioned relative to
// this one even when it is invisible.
func (t *TextElement) PredictRectAndInit(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect {
	text := env.Notification.Expand(t.Text)
	t.realText = text

	if text == "" && !t.RenderWhenEmpty {
		t.rect = geometry.Rect{}
		return emptyRectAt(hook, offset, parentRect)
	}

	t.dims = selectProfile(env.Notification, t.Dimensions,
		t.DimensionsImageApp, t.DimensionsImageHint, t.DimensionsImageBoth)

	env.Text.SetText(text, t.Font, t.dims.Width.Max, t.dims.Height.Max, t.Ellipsize)
	rect := env.Text.SizedPaddedRect(t.Padding, t.dims.Width.Min, t.dims.Height.Min)

	pos := FindAnchorPos(hook, offset, parentRect, rect)
	rect.SetXY(pos.X, pos.Y)
	t.rect = rect
	return rect
}

// Draw repositions the cached rect against the current parent rect and
// paints the resolved text. The rect size is exactly what
// PredictRectAndInit returned.
func (t *TextElement) Draw(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect {
	if t.realText == "" && !t.RenderWhenEmpty {
		return emptyRectAt(hook, offset, parentRect)
	}

	rect := t.rect
	pos := FindAnchorPos(hook, offset, parentRect, rect)

	env.Text.SetText(t.realText, t.Font, t.dims.Width.Max, t.dims.Height.Max, t.Ellipsize)
	env.Text.PaintPadded(pos, t.Color, t.Padding)

	if env.Debug {
		content := env.Text.SizedRect(t.dims.Width.Min, t.dims.Height.Min)
		content.SetXY(pos.X+t.Padding.Left, pos.Y+t.Padding.Top)
		env.Canvas.StrokeRect(content, debugColor)
	}

	rect.SetXY(pos.X, pos.Y)
	return rect
}

// Update is a no-op; static text never dirties the frame.
func (t *TextElement) Update(time.Duration, *Env) bool {
	return false
}
