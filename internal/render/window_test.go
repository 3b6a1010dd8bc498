package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/filamentd/filament/internal/geometry"
)

func newStubWindow(timeout int64, elements ...*stubElement) (*Window, *fakeSurface) {
	tree := &Block{Element: elements[0]}
	for _, el := range elements[1:] {
		tree.Children = append(tree.Children, &Block{
			Hook:    Hook{Parent: AnchorBottomLeft, Self: AnchorTopLeft},
			Element: el,
		})
	}
	surface := &fakeSurface{}
	return NewWindow(tree, &Env{}, surface, timeout, nil), surface
}

func TestWindow_InitResizesToTreeUnion(t *testing.T) {
	root := &stubElement{width: 100, height: 40}
	below := &stubElement{width: 120, height: 20}
	w, surface := newStubWindow(5000, root, below)

	// The union is wider than the root and extends below it.
	width, height := w.Size()
	assert.Equal(t, 120.0, width)
	assert.Equal(t, 60.0, height)
	assert.Equal(t, 1, surface.resizes)
	assert.Equal(t, 120.0, surface.width)
	assert.Equal(t, 60.0, surface.height)

	// Origin at zero: no compensation needed.
	assert.Equal(t, geometry.Vec2{}, w.MasterOffset())
	assert.Equal(t, 1, root.predicts)
	assert.Equal(t, 1, below.predicts)
}

func TestWindow_MasterOffsetCompensatesNegativeOrigin(t *testing.T) {
	root := &stubElement{width: 100, height: 40}
	above := &stubElement{width: 30, height: 10}
	tree := &Block{
		Element: root,
		Children: []*Block{
			{Offset: geometry.NewVec2(-20, -10), Element: above},
		},
	}
	surface := &fakeSurface{}
	w := NewWindow(tree, &Env{}, surface, 5000, nil)

	assert.Equal(t, geometry.NewVec2(20, 10), w.MasterOffset())
	assert.Equal(t, 120.0, surface.width)
	assert.Equal(t, 50.0, surface.height)

	// Drawing starts from the shifted inner rect so the tree lands in
	// positive window coordinates.
	w.Draw()
	assert.Equal(t, geometry.NewRect(20, 10, 120, 50), root.lastParent)
}

func TestWindow_FuseExpiry(t *testing.T) {
	root := &stubElement{dirty: true}
	w, surface := newStubWindow(100, root)

	assert.Equal(t, UpdateModeAll, w.Mode())
	assert.True(t, w.Update(60*time.Millisecond))
	assert.Equal(t, int64(40), w.Fuse())
	assert.False(t, w.MarkedForDestroy())
	assert.Equal(t, 1, root.updates)
	assert.Equal(t, 1, surface.redraws)

	// Expiry marks the window and skips animation for the frame.
	assert.True(t, w.Update(60*time.Millisecond))
	assert.True(t, w.MarkedForDestroy())
	assert.Equal(t, 1, root.updates)
	assert.Equal(t, 1, surface.redraws)
}

func TestWindow_NoTimeoutDisablesFuse(t *testing.T) {
	root := &stubElement{}
	w, _ := newStubWindow(0, root)

	assert.Equal(t, UpdateModeDraw, w.Mode())

	w.Update(time.Hour)
	assert.False(t, w.MarkedForDestroy())
	assert.Equal(t, 1, root.updates)
}

func TestWindow_CleanUpdateRequestsNoRedraw(t *testing.T) {
	root := &stubElement{}
	w, surface := newStubWindow(5000, root)

	assert.False(t, w.Update(16*time.Millisecond))
	assert.Equal(t, 0, surface.redraws)
}

func TestWindow_SetModePausesFuse(t *testing.T) {
	root := &stubElement{}
	w, _ := newStubWindow(100, root)

	// Hovering pauses expiry but keeps animating.
	w.SetMode(UpdateModeDraw)
	w.Update(time.Second)
	assert.Equal(t, int64(100), w.Fuse())
	assert.False(t, w.MarkedForDestroy())
	assert.Equal(t, 1, root.updates)

	w.SetMode(0)
	w.Update(time.Second)
	assert.Equal(t, 1, root.updates)

	w.SetMode(UpdateModeAll)
	w.Update(time.Second)
	assert.True(t, w.MarkedForDestroy())
}

func TestWindow_Dismiss(t *testing.T) {
	w, _ := newStubWindow(0, &stubElement{})

	assert.False(t, w.MarkedForDestroy())
	w.Dismiss()
	assert.True(t, w.MarkedForDestroy())
}

func TestWindow_DrawNeverMutatesAnimation(t *testing.T) {
	root := &stubElement{width: 10, height: 10}
	w, _ := newStubWindow(0, root)

	w.Draw()
	w.Draw()
	assert.Equal(t, 2, root.draws)
	assert.Equal(t, 0, root.updates)
}
