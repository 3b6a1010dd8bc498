package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Edges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	assert.Equal(t, 10.0, r.Left())
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 20.0, r.Top())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, 25.0, r.MidX())
	assert.Equal(t, 40.0, r.MidY())
}

func TestRect_SetXY(t *testing.T) {
	r := NewRect(0, 0, 5, 5)
	r.SetXY(-3, 7)

	assert.Equal(t, NewRect(-3, 7, 5, 5), r)
}

func TestRect_Union(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "disjoint",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(20, 20, 10, 10),
			want: NewRect(0, 0, 30, 30),
		},
		{
			name: "contained",
			a:    NewRect(0, 0, 100, 100),
			b:    NewRect(10, 10, 5, 5),
			want: NewRect(0, 0, 100, 100),
		},
		{
			name: "negative origin",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(-5, -5, 10, 10),
			want: NewRect(-5, -5, 15, 15),
		},
		{
			name: "empty left operand",
			a:    Rect{},
			b:    NewRect(1, 2, 3, 4),
			want: NewRect(1, 2, 3, 4),
		},
		{
			name: "empty right operand",
			a:    NewRect(1, 2, 3, 4),
			b:    Rect{},
			want: NewRect(1, 2, 3, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Union(tt.b))
		})
	}
}

func TestRect_Pad(t *testing.T) {
	r := NewRect(5, 5, 10, 10)
	padded := r.Pad(NewPadding(1, 2, 3, 4))

	assert.Equal(t, NewRect(5, 5, 14, 16), padded)
}

func TestLerp(t *testing.T) {
	assert.Equal(t, -48.0, Lerp(-48, 7, 0))
	assert.Equal(t, 7.0, Lerp(-48, 7, 1))
	assert.InDelta(t, -20.5, Lerp(-48, 7, 0.5), 1e-9)

	// Not clamped: overshoot extrapolates.
	assert.InDelta(t, 12.5, Lerp(-48, 7, 1.1), 1e-9)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 55.0, Distance(7, -48))
	assert.Equal(t, 55.0, Distance(-48, 7))
	assert.Equal(t, 0.0, Distance(3, 3))
}

func TestMinMax_Unconstrained(t *testing.T) {
	assert.True(t, MinMax{Min: 0, Max: -1}.Unconstrained())
	assert.False(t, MinMax{Min: 0, Max: 100}.Unconstrained())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-2, 0, 1))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
}
