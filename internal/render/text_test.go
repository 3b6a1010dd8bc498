package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filamentd/filament/internal/geometry"
	"github.com/filamentd/filament/internal/model"
)

func newTextElement() *TextElement {
	return &TextElement{
		Text:       "%s",
		Font:       "Sans 10",
		Padding:    geometry.NewPadding(5, 5, 5, 5),
		Dimensions: Dimensions{Width: geometry.MinMax{Min: 0, Max: 200}, Height: geometry.MinMax{Min: 0, Max: 0}},
		Ellipsize:  EllipsizeEnd,
	}
}

func TestTextElement_PredictAndDrawSameSize(t *testing.T) {
	n := &model.Notification{Summary: "hello"}
	env, _, _ := testEnv(n)
	el := newTextElement()

	parent := geometry.NewRect(0, 0, 300, 100)
	predicted := el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, parent, env)

	// "hello" is 5 runes at 10px plus 10px horizontal padding.
	assert.Equal(t, 60.0, predicted.Width)
	assert.Equal(t, 30.0, predicted.Height)

	// Same parent rect: identical rect.
	drawn := el.Draw(HookTopLeft, geometry.Vec2{}, parent, env)
	assert.Equal(t, predicted, drawn)

	// Shifted parent rect (master offset): same size, shifted position.
	shifted := parent
	shifted.SetXY(12, 34)
	drawn = el.Draw(HookTopLeft, geometry.Vec2{}, shifted, env)
	assert.Equal(t, predicted.Width, drawn.Width)
	assert.Equal(t, predicted.Height, drawn.Height)
	assert.Equal(t, 12.0, drawn.X)
	assert.Equal(t, 34.0, drawn.Y)
}

func TestTextElement_Idempotent(t *testing.T) {
	n := &model.Notification{Summary: "hello"}
	env, _, _ := testEnv(n)
	el := newTextElement()
	parent := geometry.NewRect(0, 0, 300, 100)

	first := el.PredictRectAndInit(HookCenter, geometry.NewVec2(3, 4), parent, env)
	state := *el
	second := el.PredictRectAndInit(HookCenter, geometry.NewVec2(3, 4), parent, env)

	assert.Equal(t, first, second)
	assert.Equal(t, state, *el)
}

func TestTextElement_EmptyText(t *testing.T) {
	n := &model.Notification{}
	env, text, _ := testEnv(n)
	el := newTextElement()

	parent := geometry.NewRect(0, 0, 300, 100)
	rect := el.PredictRectAndInit(HookBottomRight, geometry.Vec2{}, parent, env)

	// Zero-size, but still anchored so siblings are unaffected.
	assert.Equal(t, geometry.NewRect(300, 100, 0, 0), rect)

	// Never dirty, never painted.
	assert.False(t, el.Update(time.Second, env))
	drawn := el.Draw(HookBottomRight, geometry.Vec2{}, parent, env)
	assert.Equal(t, rect, drawn)
	assert.Empty(t, text.paints)
}

func TestTextElement_RenderWhenEmpty(t *testing.T) {
	n := &model.Notification{}
	env, text, _ := testEnv(n)
	el := newTextElement()
	el.RenderWhenEmpty = true

	parent := geometry.NewRect(0, 0, 300, 100)
	rect := el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, parent, env)

	// Padding still occupies space.
	assert.Equal(t, 10.0, rect.Width)
	assert.Equal(t, 30.0, rect.Height)

	el.Draw(HookTopLeft, geometry.Vec2{}, parent, env)
	require.Len(t, text.paints, 1)
}

func TestTextElement_ProfileSelection(t *testing.T) {
	appDims := &Dimensions{Width: geometry.MinMax{Max: 120}}
	hintDims := &Dimensions{Width: geometry.MinMax{Max: 80}}
	bothDims := &Dimensions{Width: geometry.MinMax{Max: 60}}

	tests := []struct {
		name         string
		appImage     string
		hintImage    string
		app, hint, b *Dimensions
		wantMax      int
	}{
		{"no images", "", "", appDims, hintDims, bothDims, 200},
		{"app image only", "/a.png", "", appDims, hintDims, bothDims, 120},
		{"app image, profile unset", "/a.png", "", nil, hintDims, bothDims, 200},
		{"hint image only", "", "/h.png", appDims, hintDims, bothDims, 80},
		{"both images", "/a.png", "/h.png", appDims, hintDims, bothDims, 60},
		{"both images, both profile unset", "/a.png", "/h.png", appDims, hintDims, nil, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &model.Notification{Summary: "x", AppImage: tt.appImage, HintImage: tt.hintImage}
			env, text, _ := testEnv(n)

			el := newTextElement()
			el.DimensionsImageApp = tt.app
			el.DimensionsImageHint = tt.hint
			el.DimensionsImageBoth = tt.b

			el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)
			assert.Equal(t, tt.wantMax, text.maxWidth)
		})
	}
}

func TestTextElement_UpdateNeverDirty(t *testing.T) {
	n := &model.Notification{Summary: "hello"}
	env, _, _ := testEnv(n)
	el := newTextElement()
	el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)

	assert.False(t, el.Update(5*time.Second, env))
}
