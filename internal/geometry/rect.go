// Package geometry provides the primitive types used by the popup layout
// engine: axis-aligned rectangles, 2D offsets, dimension bounds and padding.
package geometry

// Rect is an axis-aligned rectangle. X and Y are the top-left corner;
// positive Y grows downward, matching window coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// MidX returns the x coordinate of the horizontal center.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// MidY returns the y coordinate of the vertical center.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// SetXY moves the rectangle's top-left corner, keeping its size.
func (r *Rect) SetXY(x, y float64) {
	r.X = x
	r.Y = y
}

// Union returns the smallest rectangle covering both r and other.
// An empty rectangle contributes only its position when the other is
// empty too; unioning with a non-empty rectangle ignores empty inputs.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	left := min(r.Left(), other.Left())
	top := min(r.Top(), other.Top())
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())

	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Pad grows the rectangle outward by the given padding, keeping the
// content area at the same position relative to the padded origin.
func (r Rect) Pad(p Padding) Rect {
	return Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width + p.Left + p.Right,
		Height: r.Height + p.Top + p.Bottom,
	}
}

// Padding is an inset applied when converting a content rectangle to the
// padded rectangle that participates in layout.
type Padding struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewPadding creates a Padding from its four insets.
func NewPadding(left, top, right, bottom float64) Padding {
	return Padding{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the combined horizontal inset.
func (p Padding) Width() float64 { return p.Left + p.Right }

// Height returns the combined vertical inset.
func (p Padding) Height() float64 { return p.Top + p.Bottom }
