package svgscene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/tdewolff/test"
)

// node is an in-memory Element.
type node struct {
	tag      string
	attrs    map[string]string
	children []*node
}

// el returns an element with the given attributes, as name, value pairs.
func el(tag string, attrs ...string) *node {
	n := &node{tag: tag, attrs: make(map[string]string)}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.attrs[attrs[i]] = attrs[i+1]
	}
	return n
}

func (n *node) with(children ...*node) *node {
	n.children = append(n.children, children...)
	return n
}

func (n *node) Tag() string { return n.tag }

func (n *node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *node) Number(name string) (float64, bool) {
	v, ok := n.attrs[name]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

func (n *node) Points() []svgpath.Point { return svgpath.ParsePointList(n.attrs["points"]) }

func (n *node) Transforms() []svgpath.Transform {
	l, _ := svgpath.ParseTransforms(n.attrs["transform"])
	return l
}

func mustBuild(t *testing.T, children ...*node) *Tree {
	t.Helper()
	tree, err := Build(el("svg").with(children...), StrictErrorMode)
	test.Error(t, err)
	return tree
}

// recorder is a Surface logging the calls it receives. It also tracks the
// transformation, so that the device position of the geometry can be
// checked.
type recorder struct {
	calls []string

	m          svgpath.Matrix2D
	alpha      float64
	stack      []svgpath.Matrix2D
	alphaStack []float64

	// matrix in use for the last geometry call
	geomMatrix svgpath.Matrix2D
}

var _ Surface = (*recorder)(nil)

func newRecorder() *recorder {
	return &recorder{m: svgpath.Identity, alpha: 1, geomMatrix: svgpath.Identity}
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) String() string { return strings.Join(r.calls, "; ") }

func (r *recorder) Save() {
	r.stack = append(r.stack, r.m)
	r.alphaStack = append(r.alphaStack, r.alpha)
	r.log("save")
}

func (r *recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.m, r.stack = r.stack[n-1], r.stack[:n-1]
		r.alpha, r.alphaStack = r.alphaStack[n-1], r.alphaStack[:n-1]
	}
	r.log("restore")
}

func (r *recorder) BeginPath() { r.log("begin") }
func (r *recorder) ClosePath() { r.log("close") }

func (r *recorder) MoveTo(x, y float64) {
	r.geomMatrix = r.m
	r.log("moveto %g %g", x, y)
}

func (r *recorder) LineTo(x, y float64) {
	r.geomMatrix = r.m
	r.log("lineto %g %g", x, y)
}

func (r *recorder) Rect(x, y, w, h float64) {
	r.geomMatrix = r.m
	r.log("rect %g %g %g %g", x, y, w, h)
}

func (r *recorder) Arc(cx, cy, radius float64) {
	r.geomMatrix = r.m
	r.log("arc %g %g %g", cx, cy, radius)
}

func (r *recorder) Ellipse(cx, cy, rx, ry float64) {
	r.geomMatrix = r.m
	r.log("ellipse %g %g %g %g", cx, cy, rx, ry)
}

func colorString(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func (r *recorder) SetFillPaint(c color.Color)   { r.log("fill-paint %s", colorString(c)) }
func (r *recorder) SetStrokePaint(c color.Color) { r.log("stroke-paint %s", colorString(c)) }

func (r *recorder) GlobalAlpha() float64 { return r.alpha }

func (r *recorder) SetGlobalAlpha(alpha float64) {
	r.alpha = alpha
	r.log("alpha %g", alpha)
}

func (r *recorder) SetLineWidth(w float64)         { r.log("line-width %g", w) }
func (r *recorder) SetLineJoin(j svgdraw.JoinMode) { r.log("join %s", j) }
func (r *recorder) SetLineCap(c svgdraw.CapMode)   { r.log("cap %s", c) }
func (r *recorder) SetMiterLimit(limit float64)    { r.log("miter %g", limit) }

func (r *recorder) Fill(geom svgpath.Path) {
	if geom != nil {
		r.geomMatrix = r.m
		r.log("fill %s", geom)
		return
	}
	r.log("fill")
}

func (r *recorder) Stroke(geom svgpath.Path) {
	if geom != nil {
		r.geomMatrix = r.m
		r.log("stroke %s", geom)
		return
	}
	r.log("stroke")
}

func (r *recorder) Translate(x, y float64) {
	r.m = r.m.Translate(x, y)
	r.log("translate %g %g", x, y)
}

func (r *recorder) Scale(x, y float64) {
	r.m = r.m.Scale(x, y)
	r.log("scale %g %g", x, y)
}

func (r *recorder) Transform(m svgpath.Matrix2D) {
	r.m = r.m.Mult(m)
	r.log("transform %g %g %g %g %g %g", m.A, m.B, m.C, m.D, m.E, m.F)
}

// draw returns the calls made by drawing `d` on a new recorder.
func draw(d interface{ Draw(Surface) }) *recorder {
	r := newRecorder()
	d.Draw(r)
	return r
}
