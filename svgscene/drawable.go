package svgscene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/benoitkugler/svgscene/internal/logging"
	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgpath"
)

// Drawable is a node of the tree: a group or a shape.
type Drawable interface {
	// Draw paints the node on `s`. Nothing is drawn for invisible nodes.
	Draw(s Surface)

	// Left, Top, Right and Bottom return the bounds of the node in its own
	// coordinate space, that is before its transforms are applied.
	Left() float64
	Top() float64
	Right() float64
	Bottom() float64

	ID() string
	Class() string

	// Get returns the current value of `f`, and false if the node does
	// not support it.
	Get(f Field) (float64, bool)
	// Set changes the current value of `f`.
	Set(f Field, v float64) error
	// Initial returns the value of `f` read from the source.
	Initial(f Field) (float64, bool)

	Style(name string) (StyleValue, bool)
	SetStyle(name, value string) error
	InitialStyle(name string) (StyleValue, bool)

	Visible() bool
	SetVisible(visible bool)

	// SetReference links the node to `other`, whose changes of position
	// and size are applied to the node when drawing. Passing nil removes
	// the link.
	SetReference(other Drawable) error
	Reference() Drawable

	// RestoreState discards every change made since the node was built.
	RestoreState()

	Transforms() []svgpath.Transform

	base() *Base
}

// Base implements the state shared by every Drawable.
type Base struct {
	tree  *Tree
	index int
	ref   int // index of the reference node, or -1

	id, class  string
	transforms []svgpath.Transform

	initial fieldSet
	current fieldSet

	initialStyles map[string]StyleValue
	currentStyles map[string]StyleValue
	inherited     map[string]StyleValue // set by the parent group when drawing

	visible        bool
	currentVisible *bool
}

func newBase(el Element) Base {
	b := Base{
		ref:           -1,
		transforms:    el.Transforms(),
		initialStyles: readStyles(el),
		visible:       true,
	}
	b.id, _ = el.Attr("id")
	b.class, _ = el.Attr("class")
	if v, _ := el.Attr("visibility"); v == "hidden" || v == "collapse" {
		b.visible = false
	}
	return b
}

// readFields stores the initial values of `fields`, missing attributes
// defaulting to 0.
func (b *Base) readFields(el Element, fields ...Field) {
	for _, f := range fields {
		v, _ := el.Number(f.String())
		b.initial.put(f, v)
	}
}

func (b *Base) base() *Base { return b }

func (b *Base) ID() string    { return b.id }
func (b *Base) Class() string { return b.class }

// Transforms returns the transform list read from the source.
func (b *Base) Transforms() []svgpath.Transform { return b.transforms }

func (b *Base) Get(f Field) (float64, bool) {
	if v, ok := b.current.get(f); ok {
		return v, true
	}
	return b.initial.get(f)
}

func (b *Base) Initial(f Field) (float64, bool) { return b.initial.get(f) }

func (b *Base) Set(f Field, v float64) error {
	if _, ok := b.initial.get(f); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	b.current.put(f, v)
	return nil
}

// value returns the current value of `f`, or 0.
func (b *Base) value(f Field) float64 {
	v, _ := b.Get(f)
	return v
}

// X returns the current x value, or 0 if the node has none.
func (b *Base) X() float64      { return b.value(X) }
func (b *Base) Y() float64      { return b.value(Y) }
func (b *Base) Width() float64  { return b.value(Width) }
func (b *Base) Height() float64 { return b.value(Height) }

// Style resolves the style property `name`: a value set by the caller,
// then the value read from the source, then the value inherited from the
// parent group on the last draw.
func (b *Base) Style(name string) (StyleValue, bool) {
	if v, ok := b.currentStyles[name]; ok {
		return v, true
	}
	if v, ok := b.initialStyles[name]; ok {
		return v, true
	}
	v, ok := b.inherited[name]
	return v, ok
}

func (b *Base) InitialStyle(name string) (StyleValue, bool) {
	v, ok := b.initialStyles[name]
	return v, ok
}

// hasOwnStyle reports whether the node defines `name` itself.
func (b *Base) hasOwnStyle(name string) bool {
	if _, ok := b.currentStyles[name]; ok {
		return true
	}
	_, ok := b.initialStyles[name]
	return ok
}

func (b *Base) SetStyle(name, value string) error {
	p, ok := lookupStyle(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStyle, name)
	}
	v, err := parseStyleValue(p, value)
	if err != nil {
		return err
	}
	b.setStyleValue(name, v)
	return nil
}

func (b *Base) setStyleValue(name string, v StyleValue) {
	if b.currentStyles == nil {
		b.currentStyles = make(map[string]StyleValue)
	}
	b.currentStyles[name] = v
}

func (b *Base) Visible() bool {
	if b.currentVisible != nil {
		return *b.currentVisible
	}
	return b.visible
}

func (b *Base) SetVisible(visible bool) { b.currentVisible = &visible }

func (b *Base) RestoreState() {
	b.current = fieldSet{}
	b.currentStyles = nil
	b.inherited = nil
	b.currentVisible = nil
}

func (b *Base) SetReference(other Drawable) error {
	if other == nil {
		b.ref = -1
		return nil
	}
	ob := other.base()
	if ob == b {
		return ErrSelfReference
	}
	if ob.tree != b.tree || b.tree == nil {
		return ErrForeignNode
	}
	b.ref = ob.index
	return nil
}

func (b *Base) Reference() Drawable {
	if b.ref < 0 {
		return nil
	}
	return b.tree.nodes[b.ref]
}

// referenceFactors returns the translation and scale between the
// initial and current box of the reference node. Scales fall back to 1
// when they can't be computed.
func referenceFactors(ref *Base) (dx, dy, sx, sy float64) {
	delta := func(f Field) float64 {
		cur, ok := ref.Get(f)
		init, _ := ref.Initial(f)
		if !ok {
			return 0
		}
		return cur - init
	}
	ratio := func(f Field) float64 {
		cur, ok := ref.Get(f)
		init, _ := ref.Initial(f)
		if !ok || init == 0 {
			return 1
		}
		r := cur / init
		if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return 1
		}
		return r
	}
	return delta(X), delta(Y), ratio(Width), ratio(Height)
}

// applyReference maps the coordinate space of the node so that it follows
// the changes of its reference.
func (b *Base) applyReference(s Surface) {
	ref := b.Reference()
	if ref == nil {
		return
	}
	rb := ref.base()
	dx, dy, sx, sy := referenceFactors(rb)
	if sx != 1 || sy != 1 {
		ix, _ := rb.Initial(X)
		iy, _ := rb.Initial(Y)
		s.Translate(-ix*sx+rb.X(), -iy*sy+rb.Y())
		s.Scale(sx, sy)
	} else if dx != 0 || dy != 0 {
		s.Translate(dx, dy)
	}
}

// applyTransform applies the reference transform, then the transform
// list of the node.
func (b *Base) applyTransform(s Surface) {
	b.applyReference(s)
	for _, t := range b.transforms {
		switch t.Kind {
		case svgpath.TransformTranslate:
			s.Translate(t.Matrix.E, t.Matrix.F)
		case svgpath.TransformScale:
			s.Scale(t.Matrix.A, t.Matrix.D)
		default:
			s.Transform(t.Matrix)
		}
	}
}

// paintColor resolves a fill or stroke value, falling back to black.
func (b *Base) paintColor(name string, v StyleValue) color.Color {
	c, err := ParsePaint(v.Raw)
	if err != nil || c == nil {
		logging.Logger().Warn("unsupported paint, using black", "property", name, "value", v.Raw, "id", b.id)
		return color.Black
	}
	return c
}

// paint fills and strokes `geom` (or the current path if nil) according
// to the style of the node.
func (b *Base) paint(s Surface, geom svgpath.Path) {
	if fill, ok := b.Style(StyleFill); !ok {
		s.SetFillPaint(color.Black)
		s.Fill(geom)
	} else if fill.Raw != "none" {
		s.SetFillPaint(b.paintColor(StyleFill, fill))
		if op, ok := b.Style(StyleFillOpacity); ok {
			alpha := s.GlobalAlpha()
			s.SetGlobalAlpha(op.Number)
			s.Fill(geom)
			s.SetGlobalAlpha(alpha)
		} else {
			s.Fill(geom)
		}
	}

	if b.hasStroke() {
		b.stroke(s, geom)
	}
}

func (b *Base) hasStroke() bool {
	stroke, ok := b.Style(StyleStroke)
	return ok && stroke.Raw != "none"
}

func (b *Base) stroke(s Surface, geom svgpath.Path) {
	log := logging.Logger()
	stroke, _ := b.Style(StyleStroke)
	s.SetStrokePaint(b.paintColor(StyleStroke, stroke))
	if v, ok := b.Style(StyleStrokeWidth); ok {
		s.SetLineWidth(v.Number)
	}
	if v, ok := b.Style(StyleStrokeLineJoin); ok {
		if j, ok := svgdraw.ParseJoinMode(v.Raw); ok {
			s.SetLineJoin(j)
		} else {
			log.Warn("unsupported line join", "value", v.Raw)
		}
	}
	if v, ok := b.Style(StyleStrokeLineCap); ok {
		if c, ok := svgdraw.ParseCapMode(v.Raw); ok {
			s.SetLineCap(c)
		} else {
			log.Warn("unsupported line cap", "value", v.Raw)
		}
	}
	if v, ok := b.Style(StyleStrokeMiterLimit); ok {
		s.SetMiterLimit(v.Number)
	}
	if v, ok := b.Style(StyleStrokeOpacity); ok {
		alpha := s.GlobalAlpha()
		s.SetGlobalAlpha(v.Number)
		s.Stroke(geom)
		s.SetGlobalAlpha(alpha)
	} else {
		s.Stroke(geom)
	}
}

// drawShape runs the drawing sequence shared by the shapes: `geometry`
// adds the outline to the current path, or `geom` is painted directly.
func (b *Base) drawShape(s Surface, geometry func(Surface), geom svgpath.Path) {
	s.Save()
	s.BeginPath()
	b.applyTransform(s)
	if geometry != nil {
		geometry(s)
	}
	b.paint(s, geom)
	s.ClosePath()
	s.Restore()
}
