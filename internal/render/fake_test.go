package render

import (
	"github.com/filamentd/filament/internal/geometry"
	"github.com/filamentd/filament/internal/model"
)

// fakeText is a deterministic TextRenderer for tests: every rune is
// runeAdvance pixels wide and text is always lineHeight pixels tall.
// Constrained measurements cap the width at maxWidth, mirroring how an
// ellipsized single line never exceeds its constraint.
type fakeText struct {
	text      string
	font      string
	maxWidth  int
	maxHeight int
	mode      EllipsizeMode

	paints []paintCall
}

type paintCall struct {
	text string
	pos  geometry.Vec2
	col  Color
}

const (
	runeAdvance = 10.0
	lineHeight  = 20.0
)

func (f *fakeText) SetText(text, font string, maxWidth, maxHeight int, mode EllipsizeMode) {
	f.text = text
	f.font = font
	f.maxWidth = maxWidth
	f.maxHeight = maxHeight
	f.mode = mode
}

func (f *fakeText) contentSize() (float64, float64) {
	width := float64(len([]rune(f.text))) * runeAdvance
	if f.maxWidth >= 0 && width > float64(f.maxWidth) {
		width = float64(f.maxWidth)
	}
	return width, lineHeight
}

func (f *fakeText) SizedRect(minWidth, minHeight int) geometry.Rect {
	w, h := f.contentSize()
	return geometry.NewRect(0, 0, max(w, float64(minWidth)), max(h, float64(minHeight)))
}

func (f *fakeText) SizedPaddedRect(pad geometry.Padding, minWidth, minHeight int) geometry.Rect {
	return f.SizedRect(minWidth, minHeight).Pad(pad)
}

func (f *fakeText) Paint(pos geometry.Vec2, col Color) {
	f.paints = append(f.paints, paintCall{text: f.text, pos: pos, col: col})
}

func (f *fakeText) PaintPadded(pos geometry.Vec2, col Color, pad geometry.Padding) {
	f.Paint(geometry.NewVec2(pos.X+pad.Left, pos.Y+pad.Top), col)
}

// fakeCanvas records draw operations.
type fakeCanvas struct {
	clips   []geometry.Rect
	pops    int
	fills   []geometry.Rect
	strokes []geometry.Rect
	images  []string
}

func (c *fakeCanvas) PushClip(r geometry.Rect)                  { c.clips = append(c.clips, r) }
func (c *fakeCanvas) PopClip()                                  { c.pops++ }
func (c *fakeCanvas) FillRect(r geometry.Rect, _ float64, _ Color) { c.fills = append(c.fills, r) }
func (c *fakeCanvas) StrokeRect(r geometry.Rect, _ Color)       { c.strokes = append(c.strokes, r) }
func (c *fakeCanvas) PaintImage(path string, _ geometry.Rect)   { c.images = append(c.images, path) }

// testEnv builds an Env around fresh fakes.
func testEnv(n *model.Notification) (*Env, *fakeText, *fakeCanvas) {
	text := &fakeText{}
	canvas := &fakeCanvas{}
	return &Env{Notification: n, Text: text, Canvas: canvas}, text, canvas
}

// fakeSurface records window driver calls.
type fakeSurface struct {
	width, height float64
	resizes       int
	redraws       int
}

func (s *fakeSurface) Resize(width, height float64) {
	s.width = width
	s.height = height
	s.resizes++
}

func (s *fakeSurface) RequestRedraw() { s.redraws++ }
