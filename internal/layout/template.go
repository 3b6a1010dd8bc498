// Package layout parses popup layout templates and builds render trees
// from them. A template is an immutable description of a block tree;
// every popup window gets its own tree built from it, so animation
// state is never shared between notifications.
package layout

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/filamentd/filament/internal/geometry"
)

// Kind identifies a block variant.
type Kind string

const (
	KindRoot          Kind = "root"
	KindText          Kind = "text"
	KindScrollingText Kind = "scrolling-text"
	KindImage         Kind = "image"
)

// ValidKinds lists the recognized block kinds.
var ValidKinds = map[Kind]bool{
	KindRoot:          true,
	KindText:          true,
	KindScrollingText: true,
	KindImage:         true,
}

// Template is a parsed layout template: a named, validated block tree
// definition.
type Template struct {
	Name string   `yaml:"name"`
	Root BlockDef `yaml:"root"`
}

// Vec2Def is a 2D offset in a template.
type Vec2Def struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PaddingDef is a block padding in a template.
type PaddingDef struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// Padding converts the definition to engine padding.
func (p PaddingDef) Padding() geometry.Padding {
	return geometry.NewPadding(p.Left, p.Top, p.Right, p.Bottom)
}

// DimensionsDef bounds both axes of a text block.
type DimensionsDef struct {
	Width  geometry.MinMax `yaml:"width"`
	Height geometry.MinMax `yaml:"height"`
}

// BlockDef describes one block in the tree: how it anchors to its
// parent, what it draws, and its children. Hook names the anchor point
// on the parent's rect; SelfHook names the point on the block's own
// rect placed there, defaulting to the same point. A differing pair
// lets a block hang off its parent, e.g. hook bottom-left with
// self_hook top-left stacks the block below.
type BlockDef struct {
	Name     string     `yaml:"name"`
	Kind     Kind       `yaml:"kind"`
	Hook     string     `yaml:"hook"`
	SelfHook string     `yaml:"self_hook"`
	Offset   Vec2Def    `yaml:"offset"`
	Params   Params     `yaml:"params"`
	Children []BlockDef `yaml:"children"`
}

// Params is the union of per-kind block parameters. Only the fields
// relevant to the block's kind are consulted.
type Params struct {
	Padding PaddingDef `yaml:"padding"`

	// text and scrolling-text.
	Text            string `yaml:"text"`
	Font            string `yaml:"font"`
	Color           string `yaml:"color"`
	RenderWhenEmpty bool   `yaml:"render_when_empty"`

	// text.
	Ellipsize           string         `yaml:"ellipsize"`
	Dimensions          DimensionsDef  `yaml:"dimensions"`
	DimensionsImageApp  *DimensionsDef `yaml:"dimensions_image_app"`
	DimensionsImageHint *DimensionsDef `yaml:"dimensions_image_hint"`
	DimensionsImageBoth *DimensionsDef `yaml:"dimensions_image_both"`

	// scrolling-text.
	Width          geometry.MinMax  `yaml:"width"`
	WidthImageApp  *geometry.MinMax `yaml:"width_image_app"`
	WidthImageHint *geometry.MinMax `yaml:"width_image_hint"`
	WidthImageBoth *geometry.MinMax `yaml:"width_image_both"`
	ScrollSpeed    float64          `yaml:"scroll_speed"`
	LhsDist        float64          `yaml:"lhs_dist"`
	RhsDist        float64          `yaml:"rhs_dist"`
	ScrollT        float64          `yaml:"scroll_t"`

	// image.
	Source      string  `yaml:"source"`
	ScaleWidth  float64 `yaml:"scale_width"`
	ScaleHeight float64 `yaml:"scale_height"`

	// root.
	Background string  `yaml:"background"`
	Rounding   float64 `yaml:"rounding"`
	MinWidth   float64 `yaml:"min_width"`
	MinHeight  float64 `yaml:"min_height"`
}

// Parse reads and validates a template.
func Parse(r io.Reader) (*Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Template
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseString parses a template from a string.
func ParseString(s string) (*Template, error) {
	return Parse(strings.NewReader(s))
}

// LoadFile loads a template from a file.
func LoadFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Validate checks the whole block tree for unknown kinds, bad hooks and
// malformed colors, so building a tree from a valid template cannot
// fail.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template has no name")
	}
	if t.Root.Kind != KindRoot {
		return fmt.Errorf("template %q: top-level block must be kind %q, got %q", t.Name, KindRoot, t.Root.Kind)
	}
	return t.Root.validate(t.Name)
}

func (d *BlockDef) validate(template string) error {
	where := d.Name
	if where == "" {
		where = string(d.Kind)
	}

	if !ValidKinds[d.Kind] {
		return fmt.Errorf("template %q: block %q: unknown kind %q", template, where, d.Kind)
	}
	if _, err := parseHookOrDefault(d.Hook, d.SelfHook); err != nil {
		return fmt.Errorf("template %q: block %q: %w", template, where, err)
	}
	for _, col := range []string{d.Params.Color, d.Params.Background} {
		if col == "" {
			continue
		}
		if _, err := ParseColor(col); err != nil {
			return fmt.Errorf("template %q: block %q: %w", template, where, err)
		}
	}
	switch d.Kind {
	case KindImage:
		switch d.Params.Source {
		case "", "app", "hint", "any":
		default:
			return fmt.Errorf("template %q: block %q: unknown image source %q", template, where, d.Params.Source)
		}
	case KindText:
		switch d.Params.Ellipsize {
		case "", "none", "start", "middle", "end":
		default:
			return fmt.Errorf("template %q: block %q: unknown ellipsize mode %q", template, where, d.Params.Ellipsize)
		}
	}
	for i := range d.Children {
		if err := d.Children[i].validate(template); err != nil {
			return err
		}
	}
	return nil
}

// Loader resolves templates by name: a user template directory is
// checked first, then the embedded defaults.
type Loader struct {
	templatesDir string
}

// NewLoader creates a loader rooted at the user's template directory.
// An empty dir disables user overrides.
func NewLoader(templatesDir string) *Loader {
	return &Loader{templatesDir: templatesDir}
}

// Load resolves a template by name. An empty name means "default".
func (l *Loader) Load(name string) (*Template, error) {
	if name == "" {
		name = "default"
	}

	if l.templatesDir != "" {
		path := filepath.Join(l.templatesDir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	if t, ok := embeddedTemplate(name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("layout template not found: %s", name)
}
