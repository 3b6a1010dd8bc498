package render

import (
	"time"

	"github.com/filamentd/filament/internal/geometry"
)

// Block is a node in the layout tree: an anchored drawable element plus
// an ordered sequence of child blocks. A block exclusively owns its
// children; traversal is always top-down with the parent's resolved rect
// threaded explicitly, so no parent pointers exist.
//
// A block's cached geometry is valid only after PredictTreeAndInit has
// run for it and all of its ancestors.
type Block struct {
	// Name identifies the block in layout dumps. Optional.
	Name string

	Hook     Hook
	Offset   geometry.Vec2
	Element  Element
	Children []*Block
}

// PredictTreeAndInit initializes the whole subtree rooted at b and
// returns the union of every block's bounding rect, the total rect the
// window must accommodate. The returned rect's origin may be negative
// when a block expands left or up past the parent origin; the window
// driver compensates with a master offset.
func (b *Block) PredictTreeAndInit(parentRect geometry.Rect, env *Env) geometry.Rect {
	rect := b.Element.PredictRectAndInit(b.Hook, b.Offset, parentRect, env)

	total := rect
	for _, child := range b.Children {
		total = total.Union(child.PredictTreeAndInit(rect, env))
	}
	return total
}

// DrawTree draws the subtree rooted at b. Each block's resolved rect
// becomes the parent rect of its children, so a shifted root (master
// offset) propagates to every descendant.
func (b *Block) DrawTree(parentRect geometry.Rect, env *Env) {
	rect := b.Element.Draw(b.Hook, b.Offset, parentRect, env)

	for _, child := range b.Children {
		child.DrawTree(rect, env)
	}
}

// UpdateTree advances animation state across the subtree and reports
// whether any block needs a redraw. Blocks never depend on sibling
// animation state, so traversal order is immaterial.
func (b *Block) UpdateTree(elapsed time.Duration, env *Env) bool {
	dirty := b.Element.Update(elapsed, env)

	for _, child := range b.Children {
		if child.UpdateTree(elapsed, env) {
			dirty = true
		}
	}
	return dirty
}

// Walk visits every block in the subtree in depth-first order.
func (b *Block) Walk(fn func(depth int, b *Block)) {
	b.walk(0, fn)
}

func (b *Block) walk(depth int, fn func(depth int, b *Block)) {
	fn(depth, b)
	for _, child := range b.Children {
		child.walk(depth+1, fn)
	}
}
