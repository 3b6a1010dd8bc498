package render

import (
	"time"

	"github.com/filamentd/filament/internal/geometry"
)

// ScrollingTextElement renders a single line of text that oscillates
// horizontally inside a clipped box when it is too wide to fit.
//
// Layout uses the ellipsized, width-constrained measurement, so siblings
// see the same bounding rect whether or not the text overflows. The
// animation moves the full, unconstrained text between two stationary
// bounce points derived from the clip box and the configured margins;
// the scrolling offset never leaks into the returned rect.
type ScrollingTextElement struct {
	Padding geometry.Padding
	Text    string
	Font    string
	Color   Color

	Width geometry.MinMax
	// Alternative width profiles selected by image presence.
	WidthImageApp  *geometry.MinMax
	WidthImageHint *geometry.MinMax
	WidthImageBoth *geometry.MinMax

	// ScrollSpeed is expressed in profile widths per second and is
	// rescaled by the actual pixel distance, so the configured speed
	// looks the same regardless of text length. The sign selects the
	// initial direction.
	ScrollSpeed float64
	// LhsDist and RhsDist are the bounce margins: how far inside the
	// clip box the text's left/right edge settles at each extreme.
	LhsDist float64
	RhsDist float64
	// ScrollT is the initial animation phase in [0, 1].
	ScrollT float64

	RenderWhenEmpty bool

	// Cached at init.
	realText       string
	realWidth      geometry.MinMax
	rect           geometry.Rect
	clipRect       geometry.Rect
	textRect       geometry.Rect
	scrollDistance float64
	updateEnabled  bool

	// Mutable animation pair, advanced by Update only.
	scrollT     float64
	scrollSpeed float64
}

// PredictRectAndInit measures the text twice: once ellipsized under the
// selected width profile to obtain the bounding and clip rects used for
// layout, and once unconstrained to obtain the text's true extent. The
// bounce points and scroll distance are derived from both.
func (s *ScrollingTextElement) PredictRectAndInit(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect {
	text := env.Notification.Expand(s.Text)
	s.realText = text

	if text == "" && !s.RenderWhenEmpty {
		s.updateEnabled = false
		s.rect = geometry.Rect{}
		return emptyRectAt(hook, offset, parentRect)
	}

	// Cached because Update has no access to the notification.
	s.realWidth = selectProfile(env.Notification, s.Width,
		s.WidthImageApp, s.WidthImageHint, s.WidthImageBoth)

	// Max height of 0 keeps the text to one line.
	env.Text.SetText(text, s.Font, s.realWidth.Max, 0, EllipsizeMiddle)

	// rect     -- padded bounding box, what siblings anchor against.
	// clipRect -- unpadded content box, the visible scrolling window.
	// textRect -- true extent, measured with no width constraint.
	rect := env.Text.SizedPaddedRect(s.Padding, s.realWidth.Min, 0)
	clipRect := env.Text.SizedPaddedRect(geometry.Padding{}, 0, 0)

	env.Text.SetText(text, s.Font, -1, 0, EllipsizeNone)
	textRect := env.Text.SizedPaddedRect(geometry.Padding{}, 0, 0)

	s.updateEnabled = textRect.Width > float64(s.realWidth.Max)

	pos := FindAnchorPos(hook, offset, parentRect, rect)

	// The two stationary bounce points, in the anchored frame:
	// bounceLeft is the rightmost x-offset the text may occupy (left
	// margin lined up), bounceRight the leftmost (right margin lined up).
	bounceLeft := pos.X + s.Padding.Left + s.LhsDist
	bounceRight := pos.X + s.Padding.Left + clipRect.Width - s.RhsDist - textRect.Width

	s.scrollDistance = geometry.Distance(bounceLeft, bounceRight)
	if s.scrollDistance == 0 {
		// Identical bounce points: nothing to scroll, and advancing the
		// phase would divide by zero.
		s.updateEnabled = false
	}

	s.textRect = textRect
	s.clipRect = clipRect
	s.scrollT = s.ScrollT
	s.scrollSpeed = s.ScrollSpeed

	rect.SetXY(pos.X, pos.Y)
	s.rect = rect
	return rect
}

// Draw paints the text, clipped and offset by the current animation
// phase when it overflows. The returned rect is always at the plain
// anchored position: scrolling must not perturb sibling layout.
func (s *ScrollingTextElement) Draw(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect {
	if s.realText == "" && !s.RenderWhenEmpty {
		return emptyRectAt(hook, offset, parentRect)
	}

	rect := s.rect
	pos := FindAnchorPos(hook, offset, parentRect, rect)
	textX := pos.X + s.Padding.Left
	textY := pos.Y + s.Padding.Top

	if env.Debug {
		env.Canvas.StrokeRect(geometry.NewRect(textX, textY, s.clipRect.Width, s.clipRect.Height), debugColor)
	}

	if s.textRect.Width > float64(s.realWidth.Max) {
		// Overflowing: clip to the content box and slide the full text
		// between the bounce points.
		env.Text.SetText(s.realText, s.Font, -1, 0, EllipsizeNone)
		env.Canvas.PushClip(geometry.NewRect(textX, textY, s.clipRect.Width, s.clipRect.Height))

		bounceLeft := pos.X + s.Padding.Left + s.LhsDist
		bounceRight := pos.X + s.Padding.Left + s.clipRect.Width - s.RhsDist - s.textRect.Width

		// At scrollT=0 the text sits at bounceRight; it travels toward
		// bounceLeft as the phase approaches 1.
		x := geometry.Lerp(bounceRight, bounceLeft, s.scrollT)
		env.Text.Paint(geometry.NewVec2(x, textY), s.Color)

		env.Canvas.PopClip()
	} else {
		env.Text.SetText(s.realText, s.Font, s.realWidth.Max, 0, EllipsizeMiddle)
		env.Text.Paint(geometry.NewVec2(textX, textY), s.Color)
	}

	rect.SetXY(pos.X, pos.Y)
	return rect
}

// Update advances the animation phase and reverses direction when a
// bound is crossed. The phase is deliberately not clamped: it may
// overshoot past 0 or 1 and is pulled back by the reversed speed on
// subsequent frames.
func (s *ScrollingTextElement) Update(elapsed time.Duration, _ *Env) bool {
	if !s.updateEnabled {
		return false
	}

	// Advance proportionally to the profile width so the visual speed
	// is independent of how far the text has to travel.
	s.scrollT += elapsed.Seconds() * s.scrollSpeed * (float64(s.realWidth.Max) / s.scrollDistance)

	if s.scrollSpeed > 0 {
		if s.scrollT >= 1.0 {
			s.scrollSpeed = -s.scrollSpeed
		}
	} else if s.scrollSpeed < 0 {
		if s.scrollT <= 0.0 {
			s.scrollSpeed = -s.scrollSpeed
		}
	}

	return true
}

// Phase returns the current animation pair. Exposed for tests and
// layout debugging.
func (s *ScrollingTextElement) Phase() (scrollT, scrollSpeed float64) {
	return s.scrollT, s.scrollSpeed
}

// ScrollingActive reports whether the text overflowed its profile and
// the oscillation is running.
func (s *ScrollingTextElement) ScrollingActive() bool {
	return s.updateEnabled
}
