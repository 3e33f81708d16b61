package svgdraw

import (
	"image/color"
	"math"

	"github.com/benoitkugler/svgscene/svgpath"
	"golang.org/x/image/math/fixed"
)

// graphic state saved and restored by the Canvas
type state struct {
	ctm svgpath.Matrix2D

	fill, stroke color.Color
	alpha        float64

	lineWidth  float64
	join       JoinMode
	lineCap    CapMode
	miterLimit float64
}

var defaultState = state{
	ctm:        svgpath.Identity,
	fill:       color.Black,
	stroke:     color.Black,
	alpha:      1,
	lineWidth:  1,
	join:       Miter,
	lineCap:    ButtCap,
	miterLimit: 4,
}

// Canvas is a stateful drawing surface with a save/restore stack, a
// current transformation and a current path, in the manner of an HTML
// canvas 2D context. Painting operations are forwarded to a Driver, with
// points already mapped to device space.
type Canvas struct {
	driver Driver
	state  state
	stack  []state
	path   svgpath.Path // current path, in device space
}

// NewCanvas returns a canvas painting on `driver`.
func NewCanvas(driver Driver) *Canvas {
	return &Canvas{driver: driver, state: defaultState}
}

// Save pushes the graphic state on the stack.
func (c *Canvas) Save() { c.stack = append(c.stack, c.state) }

// Restore pops the graphic state. It does nothing on an empty stack.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Matrix returns the current transformation.
func (c *Canvas) Matrix() svgpath.Matrix2D { return c.state.ctm }

// SetMatrix replaces the current transformation.
func (c *Canvas) SetMatrix(m svgpath.Matrix2D) { c.state.ctm = m }

func (c *Canvas) Translate(x, y float64) { c.state.ctm = c.state.ctm.Translate(x, y) }

func (c *Canvas) Scale(x, y float64) { c.state.ctm = c.state.ctm.Scale(x, y) }

// Transform multiplies the current transformation by `m`.
func (c *Canvas) Transform(m svgpath.Matrix2D) { c.state.ctm = c.state.ctm.Mult(m) }

// BeginPath discards the current path.
func (c *Canvas) BeginPath() { c.path = nil }

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() {
	if len(c.path) == 0 {
		return
	}
	if _, closed := c.path[len(c.path)-1].(svgpath.Close); !closed {
		c.path.Stop(true)
	}
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path.Start(c.state.ctm.TransformPoint(svgpath.Point{X: x, Y: y}))
}

func (c *Canvas) LineTo(x, y float64) {
	p := c.state.ctm.TransformPoint(svgpath.Point{X: x, Y: y})
	if len(c.path) == 0 {
		c.path.Start(p)
		return
	}
	c.path.Line(p)
}

func (c *Canvas) appendPath(p svgpath.Path) {
	c.path = append(c.path, p.Transformed(c.state.ctm)...)
}

// Rect adds a closed rectangle subpath.
func (c *Canvas) Rect(x, y, w, h float64) {
	var p svgpath.Path
	p.AddRect(x, y, w, h)
	c.appendPath(p)
}

// Arc adds a full circle as a new closed subpath.
func (c *Canvas) Arc(cx, cy, r float64) {
	c.Ellipse(cx, cy, r, r)
}

// Ellipse adds a full axis aligned ellipse as a new closed subpath.
func (c *Canvas) Ellipse(cx, cy, rx, ry float64) {
	var p svgpath.Path
	p.AddEllipse(cx, cy, rx, ry)
	c.appendPath(p)
}

func (c *Canvas) SetFillPaint(col color.Color)   { c.state.fill = col }
func (c *Canvas) SetStrokePaint(col color.Color) { c.state.stroke = col }
func (c *Canvas) GlobalAlpha() float64           { return c.state.alpha }
func (c *Canvas) SetGlobalAlpha(alpha float64)   { c.state.alpha = alpha }
func (c *Canvas) SetLineWidth(w float64)         { c.state.lineWidth = w }
func (c *Canvas) SetLineJoin(j JoinMode)         { c.state.join = j }
func (c *Canvas) SetLineCap(cp CapMode)          { c.state.lineCap = cp }
func (c *Canvas) SetMiterLimit(limit float64)    { c.state.miterLimit = limit }

// resolve returns `p` mapped to device space, or the current path if
// `p` is nil.
func (c *Canvas) resolve(p svgpath.Path) svgpath.Path {
	if p == nil {
		return c.path
	}
	return p.Transformed(c.state.ctm)
}

// Fill fills `p` (or the current path if nil) with the fill paint,
// using the non zero winding rule.
func (c *Canvas) Fill(p svgpath.Path) {
	p = c.resolve(p)
	if len(p) == 0 {
		return
	}
	filler, _ := c.driver.SetupDrawers(true, false)
	if filler == nil {
		return
	}
	filler.Clear()
	filler.SetWinding(true)
	replay(filler, p)
	filler.SetColor(c.state.fill, c.state.alpha)
	filler.Draw()
}

// Stroke strokes `p` (or the current path if nil) with the stroke paint
// and the current line settings. The line width follows the scaling of
// the current transformation.
func (c *Canvas) Stroke(p svgpath.Path) {
	p = c.resolve(p)
	if len(p) == 0 {
		return
	}
	_, stroker := c.driver.SetupDrawers(false, true)
	if stroker == nil {
		return
	}
	stroker.Clear()
	scale := math.Sqrt(math.Abs(c.state.ctm.Determinant()))
	lineCap := c.state.lineCap
	if lineCap == NilCap {
		lineCap = ButtCap
	}
	stroker.SetStrokeOptions(StrokeOptions{
		LineWidth: fixed.Int26_6(c.state.lineWidth * scale * 64),
		Join: JoinOptions{
			MiterLimit:   fixed.Int26_6(c.state.miterLimit * 64),
			LineJoin:     c.state.join,
			LeadLineCap:  lineCap,
			TrailLineCap: lineCap,
			LineGap:      FlatGap,
		},
	})
	replay(stroker, p)
	stroker.SetColor(c.state.stroke, c.state.alpha)
	stroker.Draw()
}

func toFixedP(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// replay sends the device space path `p` to `d`.
func replay(d Drawer, p svgpath.Path) {
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			d.Stop(false) // implicit close if currently in path.
			d.Start(toFixedP(svgpath.Point(op)))
		case svgpath.LineTo:
			d.Line(toFixedP(svgpath.Point(op)))
		case svgpath.QuadTo:
			d.QuadBezier(toFixedP(op[0]), toFixedP(op[1]))
		case svgpath.CubicTo:
			d.CubeBezier(toFixedP(op[0]), toFixedP(op[1]), toFixedP(op[2]))
		case svgpath.Close:
			d.Stop(true)
		}
	}
	d.Stop(false)
}
