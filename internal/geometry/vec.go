package geometry

import "math"

// Vec2 is a 2D offset or position.
type Vec2 struct {
	X float64
	Y float64
}

// NewVec2 creates a Vec2.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// MinMax bounds one dimension of a block. A Max of -1 conventionally
// means the dimension is unconstrained.
type MinMax struct {
	Min int `toml:"min" yaml:"min"`
	Max int `toml:"max" yaml:"max"`
}

// Unconstrained reports whether the upper bound is disabled.
func (m MinMax) Unconstrained() bool { return m.Max < 0 }

// Lerp linearly interpolates between a and b. t is not clamped; values
// outside [0, 1] extrapolate, which the scrolling animation relies on.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Distance returns the absolute distance between two scalar coordinates.
func Distance(a, b float64) float64 {
	return math.Abs(a - b)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
