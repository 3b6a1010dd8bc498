package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filamentd/filament/internal/geometry"
	"github.com/filamentd/filament/internal/model"
)

// newScrollElement builds the shared fixture: profile max width 100,
// padding.left 5, bounce margins 2 and 3.
func newScrollElement() *ScrollingTextElement {
	return &ScrollingTextElement{
		Text:        "%s",
		Font:        "Sans 10",
		Padding:     geometry.NewPadding(5, 0, 0, 0),
		Width:       geometry.MinMax{Min: 0, Max: 100},
		ScrollSpeed: 0.5,
		LhsDist:     2,
		RhsDist:     3,
	}
}

// overflowing is 15 runes = 150px unconstrained, against a 100px profile.
var overflowing = strings.Repeat("m", 15)

// fitting is 5 runes = 50px.
var fitting = strings.Repeat("m", 5)

func TestScrolling_NonOverflowingDisabled(t *testing.T) {
	n := &model.Notification{Summary: fitting}
	env, text, canvas := testEnv(n)
	el := newScrollElement()

	el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)
	assert.False(t, el.ScrollingActive())

	// Never dirty.
	assert.False(t, el.Update(time.Second, env))
	assert.False(t, el.Update(10*time.Second, env))

	// Draw never clips or shifts.
	el.Draw(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)
	assert.Empty(t, canvas.clips)
	require.Len(t, text.paints, 1)
	assert.Equal(t, geometry.NewVec2(5, 0), text.paints[0].pos)
}

func TestScrolling_OverflowingEnabled(t *testing.T) {
	n := &model.Notification{Summary: overflowing}
	env, _, _ := testEnv(n)
	el := newScrollElement()

	el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)
	assert.True(t, el.ScrollingActive())
	assert.True(t, el.Update(10*time.Millisecond, env))
}

func TestScrolling_BouncePoints(t *testing.T) {
	n := &model.Notification{Summary: overflowing}
	env, _, _ := testEnv(n)
	el := newScrollElement()

	rect := el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)

	// Display rect: 100px clip plus 5px left padding.
	assert.Equal(t, geometry.NewRect(0, 0, 105, 20), rect)
	assert.Equal(t, geometry.NewRect(0, 0, 100, 20), el.clipRect)
	assert.Equal(t, 150.0, el.textRect.Width)

	// bounceLeft = 0+5+2 = 7, bounceRight = 0+5+100-3-150 = -48.
	assert.Equal(t, 55.0, el.scrollDistance)
}

func TestScrolling_DrawAtPhaseExtremes(t *testing.T) {
	for _, tt := range []struct {
		phase float64
		wantX float64
	}{
		{0, -48},
		{1, 7},
	} {
		n := &model.Notification{Summary: overflowing}
		env, text, canvas := testEnv(n)
		el := newScrollElement()
		el.ScrollT = tt.phase

		predicted := el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)
		drawn := el.Draw(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)

		// Clip window sits at the padded anchor.
		require.Len(t, canvas.clips, 1)
		assert.Equal(t, geometry.NewRect(5, 0, 100, 20), canvas.clips[0])
		assert.Equal(t, 1, canvas.pops)

		// Text painted at the interpolated offset.
		require.Len(t, text.paints, 1)
		assert.Equal(t, tt.wantX, text.paints[0].pos.X)

		// The scroll offset never perturbs the returned rect.
		assert.Equal(t, predicted, drawn)
	}
}

func TestScrolling_UpdateScalesWithProfileWidth(t *testing.T) {
	// Hold speed and distance fixed: doubling the profile width doubles
	// the per-second phase rate.
	rate := func(maxWidth int) float64 {
		el := &ScrollingTextElement{}
		el.realWidth = geometry.MinMax{Max: maxWidth}
		el.scrollDistance = 55
		el.scrollSpeed = 0.5
		el.updateEnabled = true
		el.Update(time.Second, nil)
		return el.scrollT
	}

	assert.InDelta(t, rate(100)*2, rate(200), 1e-9)
}

func TestScrolling_OvershootAndReversal(t *testing.T) {
	// scroll_speed=0.5/s, max_width=100, distance=55, elapsed=1s:
	// delta = 0.5*(100/55) = 0.909..; from 0.2 the phase overshoots 1.0
	// and the direction reverses.
	el := &ScrollingTextElement{}
	el.realWidth = geometry.MinMax{Max: 100}
	el.scrollDistance = 55
	el.scrollSpeed = 0.5
	el.scrollT = 0.2
	el.updateEnabled = true

	assert.True(t, el.Update(time.Second, nil))

	phase, speed := el.Phase()
	assert.InDelta(t, 1.109, phase, 0.001)
	assert.Equal(t, -0.5, speed)
}

func TestScrolling_BounceBothEdges(t *testing.T) {
	n := &model.Notification{Summary: overflowing}
	env, _, _ := testEnv(n)
	el := newScrollElement()
	el.ScrollSpeed = 1.0

	el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)

	step := 100 * time.Millisecond
	flips := 0
	_, prevSpeed := el.Phase()
	for i := 0; i < 200 && flips < 2; i++ {
		el.Update(step, env)
		if _, speed := el.Phase(); speed != prevSpeed {
			flips++
			prevSpeed = speed
		}
	}
	require.Equal(t, 2, flips, "expected a bounce off each edge")

	// After the second flip the phase is heading back up from the low
	// bound.
	phase, speed := el.Phase()
	assert.Positive(t, speed)
	assert.Less(t, phase, 1.0)
}

func TestScrolling_ZeroDistanceGuard(t *testing.T) {
	// Contrived margins that collapse the two bounce points onto each
	// other: scrolling must disable rather than divide by zero.
	n := &model.Notification{Summary: overflowing}
	env, _, _ := testEnv(n)
	el := newScrollElement()
	el.Padding = geometry.Padding{}
	el.LhsDist = -50
	el.RhsDist = 0

	el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)

	assert.Equal(t, 0.0, el.scrollDistance)
	assert.False(t, el.ScrollingActive())
	assert.False(t, el.Update(time.Second, env))
}

func TestScrolling_EmptyText(t *testing.T) {
	n := &model.Notification{}
	env, text, _ := testEnv(n)
	el := newScrollElement()

	parent := geometry.NewRect(0, 0, 200, 50)
	rect := el.PredictRectAndInit(HookBottomLeft, geometry.Vec2{}, parent, env)

	assert.Equal(t, geometry.NewRect(0, 50, 0, 0), rect)
	assert.False(t, el.Update(time.Hour, env))

	el.Draw(HookBottomLeft, geometry.Vec2{}, parent, env)
	assert.Empty(t, text.paints)
}

func TestScrolling_WidthProfileByImage(t *testing.T) {
	app := &geometry.MinMax{Max: 300}

	n := &model.Notification{Summary: overflowing, AppImage: "/a.png"}
	env, _, _ := testEnv(n)
	el := newScrollElement()
	el.WidthImageApp = app

	el.PredictRectAndInit(HookTopLeft, geometry.Vec2{}, geometry.Rect{}, env)

	// 150px of text fits the 300px app profile: no scrolling.
	assert.Equal(t, geometry.MinMax{Max: 300}, el.realWidth)
	assert.False(t, el.ScrollingActive())
}
