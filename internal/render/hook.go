package render

import (
	"fmt"

	"github.com/filamentd/filament/internal/geometry"
)

// Anchor names one of the nine standard anchor points of a rectangle.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopMiddle
	AnchorTopRight
	AnchorMiddleLeft
	AnchorCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomMiddle
	AnchorBottomRight
)

var anchorNames = map[Anchor]string{
	AnchorTopLeft:      "top-left",
	AnchorTopMiddle:    "top-middle",
	AnchorTopRight:     "top-right",
	AnchorMiddleLeft:   "middle-left",
	AnchorCenter:       "center",
	AnchorMiddleRight:  "middle-right",
	AnchorBottomLeft:   "bottom-left",
	AnchorBottomMiddle: "bottom-middle",
	AnchorBottomRight:  "bottom-right",
}

// String returns the configuration name of the anchor.
func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAnchor parses a configuration anchor name.
func ParseAnchor(s string) (Anchor, error) {
	for a, name := range anchorNames {
		if name == s {
			return a, nil
		}
	}
	return AnchorTopLeft, fmt.Errorf("unknown anchor %q", s)
}

// Hook pairs an anchor point on the parent's rect with one on the
// block's own rect: the block is positioned so the two points coincide.
// With both anchors on the same point the block sits inside the parent
// at that corner or edge; with differing anchors a block can hang off
// its parent, e.g. parent bottom-left to self top-left stacks the block
// below.
type Hook struct {
	Parent Anchor
	Self   Anchor
}

// HookAt returns a hook with both anchors on the same point.
func HookAt(a Anchor) Hook {
	return Hook{Parent: a, Self: a}
}

// The nine symmetric hooks, for blocks placed inside their parent.
var (
	HookTopLeft      = HookAt(AnchorTopLeft)
	HookTopMiddle    = HookAt(AnchorTopMiddle)
	HookTopRight     = HookAt(AnchorTopRight)
	HookMiddleLeft   = HookAt(AnchorMiddleLeft)
	HookCenter       = HookAt(AnchorCenter)
	HookMiddleRight  = HookAt(AnchorMiddleRight)
	HookBottomLeft   = HookAt(AnchorBottomLeft)
	HookBottomMiddle = HookAt(AnchorBottomMiddle)
	HookBottomRight  = HookAt(AnchorBottomRight)
)

// String returns the configuration form of the hook.
func (h Hook) String() string {
	if h.Parent == h.Self {
		return h.Parent.String()
	}
	return h.Parent.String() + "/" + h.Self.String()
}

// anchorPoint returns the anchor point of r in absolute coordinates.
func anchorPoint(a Anchor, r geometry.Rect) geometry.Vec2 {
	var x, y float64

	switch a {
	case AnchorTopLeft, AnchorMiddleLeft, AnchorBottomLeft:
		x = r.Left()
	case AnchorTopMiddle, AnchorCenter, AnchorBottomMiddle:
		x = r.MidX()
	case AnchorTopRight, AnchorMiddleRight, AnchorBottomRight:
		x = r.Right()
	}

	switch a {
	case AnchorTopLeft, AnchorTopMiddle, AnchorTopRight:
		y = r.Top()
	case AnchorMiddleLeft, AnchorCenter, AnchorMiddleRight:
		y = r.MidY()
	case AnchorBottomLeft, AnchorBottomMiddle, AnchorBottomRight:
		y = r.Bottom()
	}

	return geometry.Vec2{X: x, Y: y}
}

// FindAnchorPos computes the top-left position for ownRect such that
// its self anchor point coincides with the parent anchor point of
// parentRect, then applies offset as an additional translation. Pure
// function; only the sizes of ownRect matter, not its current position.
func FindAnchorPos(hook Hook, offset geometry.Vec2, parentRect, ownRect geometry.Rect) geometry.Vec2 {
	parent := anchorPoint(hook.Parent, parentRect)
	own := anchorPoint(hook.Self, geometry.NewRect(0, 0, ownRect.Width, ownRect.Height))

	return geometry.Vec2{
		X: parent.X - own.X + offset.X,
		Y: parent.Y - own.Y + offset.Y,
	}
}
