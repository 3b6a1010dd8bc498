package render

import (
	"time"

	"github.com/filamentd/filament/internal/geometry"
	"github.com/filamentd/filament/internal/model"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// EllipsizeMode selects how text is shortened when it exceeds its
// maximum width.
type EllipsizeMode string

const (
	EllipsizeNone   EllipsizeMode = "none"
	EllipsizeStart  EllipsizeMode = "start"
	EllipsizeMiddle EllipsizeMode = "middle"
	EllipsizeEnd    EllipsizeMode = "end"
)

// TextRenderer is the text measurement and paint service the engine
// consumes. Implementations are stateful: SetText establishes the
// current text and constraints, and subsequent Sized*/Paint* calls
// operate on it. Measurements must be deterministic for identical
// inputs within one frame.
//
// A maxWidth or maxHeight of -1 means unconstrained; a maxHeight of 0
// constrains the text to a single line.
type TextRenderer interface {
	SetText(text, font string, maxWidth, maxHeight int, mode EllipsizeMode)

	// SizedRect returns the content rect of the current text, grown to
	// at least minWidth x minHeight. Position is zero.
	SizedRect(minWidth, minHeight int) geometry.Rect

	// SizedPaddedRect is SizedRect with padding applied around the
	// content area.
	SizedPaddedRect(pad geometry.Padding, minWidth, minHeight int) geometry.Rect

	// Paint draws the current text with its top-left at pos.
	Paint(pos geometry.Vec2, col Color)

	// PaintPadded draws the current text inset by pad from pos.
	PaintPadded(pos geometry.Vec2, col Color, pad geometry.Padding)
}

// Canvas is the drawing surface the engine paints non-text content on:
// clip regions, background fills, images and debug outlines.
type Canvas interface {
	PushClip(r geometry.Rect)
	PopClip()
	FillRect(r geometry.Rect, radius float64, col Color)
	StrokeRect(r geometry.Rect, col Color)
	PaintImage(path string, r geometry.Rect)
}

// Env carries the per-window collaborators a tree walk needs: the
// notification being rendered and the services to measure and paint
// with. One Env belongs to exactly one window; walks never share it.
type Env struct {
	Notification *model.Notification
	Text         TextRenderer
	Canvas       Canvas

	// Debug draws block outlines to help layout authors.
	Debug bool
}

// debugColor outlines block content rects when Env.Debug is set.
var debugColor = Color{R: 1, G: 0, B: 0, A: 0.8}

// Element is the capability contract every drawable block variant
// implements.
//
// PredictRectAndInit runs exactly once per tree instantiation, before
// any Draw or Update. It resolves the block's text against the
// notification, measures it, caches derived geometry and animation
// state, and returns the block's bounding rect positioned via its
// anchor.
//
// Draw repositions the cached rect against the current parent rect and
// paints. It may read animation state but never advances it, and must
// return a rect of the same size PredictRectAndInit produced.
//
// Update advances time-driven state and reports whether a redraw is
// needed.
type Element interface {
	PredictRectAndInit(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect
	Draw(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect
	Update(elapsed time.Duration, env *Env) bool
}

// Dimensions bounds both axes of a block.
type Dimensions struct {
	Width  geometry.MinMax
	Height geometry.MinMax
}

// selectProfile picks among up to four alternative size profiles based
// on exactly which images the notification carries. A combination whose
// profile is not configured falls straight back to the default; no
// partial match is consulted.
func selectProfile[T any](n *model.Notification, def T, app, hint, both *T) T {
	hasApp, hasHint := n.HasAppImage(), n.HasHintImage()

	switch {
	case hasApp && hasHint:
		if both != nil {
			return *both
		}
	case hasApp:
		if app != nil {
			return *app
		}
	case hasHint:
		if hint != nil {
			return *hint
		}
	}
	return def
}

// emptyRectAt returns the degenerate zero-size rect used for blocks that
// resolve to empty text: anchored so sibling layout is unaffected, but
// invisible.
func emptyRectAt(hook Hook, offset geometry.Vec2, parentRect geometry.Rect) geometry.Rect {
	pos := FindAnchorPos(hook, offset, parentRect, geometry.Rect{})
	return geometry.NewRect(pos.X, pos.Y, 0, 0)
}
