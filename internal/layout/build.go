package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/filamentd/filament/internal/geometry"
	"github.com/filamentd/filament/internal/render"
)

// Build constructs a fresh render tree from the template. Every call
// returns new element instances, so per-window animation and cached
// geometry never bleed across popups. The template must have passed
// Validate; Build panics on kinds Validate would have rejected.
func (t *Template) Build() *render.Block {
	return buildBlock(&t.Root)
}

func buildBlock(d *BlockDef) *render.Block {
	b := &render.Block{
		Name:    d.Name,
		Hook:    mustHook(d.Hook, d.SelfHook),
		Offset:  d.Offset.vec2(),
		Element: buildElement(d),
	}
	for i := range d.Children {
		b.Children = append(b.Children, buildBlock(&d.Children[i]))
	}
	return b
}

func buildElement(d *BlockDef) render.Element {
	p := &d.Params

	switch d.Kind {
	case KindRoot:
		return &render.RootElement{
			Color:     mustColor(p.Background),
			Rounding:  p.Rounding,
			MinWidth:  p.MinWidth,
			MinHeight: p.MinHeight,
		}

	case KindText:
		el := &render.TextElement{
			Padding:         p.Padding.Padding(),
			Text:            p.Text,
			Font:            p.Font,
			Color:           mustColor(p.Color),
			Ellipsize:       ellipsizeMode(p.Ellipsize),
			RenderWhenEmpty: p.RenderWhenEmpty,
			Dimensions: render.Dimensions{
				Width:  p.Dimensions.Width,
				Height: p.Dimensions.Height,
			},
		}
		el.DimensionsImageApp = dimensions(p.DimensionsImageApp)
		el.DimensionsImageHint = dimensions(p.DimensionsImageHint)
		el.DimensionsImageBoth = dimensions(p.DimensionsImageBoth)
		return el

	case KindScrollingText:
		return &render.ScrollingTextElement{
			Padding:         p.Padding.Padding(),
			Text:            p.Text,
			Font:            p.Font,
			Color:           mustColor(p.Color),
			Width:           p.Width,
			WidthImageApp:   p.WidthImageApp,
			WidthImageHint:  p.WidthImageHint,
			WidthImageBoth:  p.WidthImageBoth,
			ScrollSpeed:     p.ScrollSpeed,
			LhsDist:         p.LhsDist,
			RhsDist:         p.RhsDist,
			ScrollT:         p.ScrollT,
			RenderWhenEmpty: p.RenderWhenEmpty,
		}

	case KindImage:
		source := render.ImageSource(p.Source)
		if p.Source == "" {
			source = render.ImageSourceAny
		}
		return &render.ImageElement{
			Padding:     p.Padding.Padding(),
			Source:      source,
			ScaleWidth:  p.ScaleWidth,
			ScaleHeight: p.ScaleHeight,
		}

	default:
		panic(fmt.Sprintf("layout: unvalidated block kind %q", d.Kind))
	}
}

func (v Vec2Def) vec2() geometry.Vec2 {
	return geometry.NewVec2(v.X, v.Y)
}

func dimensions(d *DimensionsDef) *render.Dimensions {
	if d == nil {
		return nil
	}
	return &render.Dimensions{Width: d.Width, Height: d.Height}
}

func ellipsizeMode(s string) render.EllipsizeMode {
	if s == "" {
		return render.EllipsizeEnd
	}
	return render.EllipsizeMode(s)
}

// parseHookOrDefault resolves the hook/self_hook pair. An empty hook
// means top-left; an empty self_hook mirrors the parent anchor so the
// block sits inside its parent at that point.
func parseHookOrDefault(hook, selfHook string) (render.Hook, error) {
	parent := render.AnchorTopLeft
	if hook != "" {
		var err error
		parent, err = render.ParseAnchor(hook)
		if err != nil {
			return render.Hook{}, err
		}
	}

	self := parent
	if selfHook != "" {
		var err error
		self, err = render.ParseAnchor(selfHook)
		if err != nil {
			return render.Hook{}, err
		}
	}

	return render.Hook{Parent: parent, Self: self}, nil
}

func mustHook(hook, selfHook string) render.Hook {
	h, err := parseHookOrDefault(hook, selfHook)
	if err != nil {
		panic(fmt.Sprintf("layout: unvalidated hook %q/%q", hook, selfHook))
	}
	return h
}

func mustColor(s string) render.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(fmt.Sprintf("layout: unvalidated color %q", s))
	}
	return c
}

// ParseColor parses a "#RRGGBB" or "#RRGGBBAA" hex color. An empty
// string is opaque white, so omitting a color in a template stays
// visible rather than silently painting nothing.
func ParseColor(s string) (render.Color, error) {
	if s == "" {
		return render.Color{R: 1, G: 1, B: 1, A: 1}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return render.Color{}, fmt.Errorf("malformed color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return render.Color{}, fmt.Errorf("malformed color %q", s)
	}

	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return render.Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
