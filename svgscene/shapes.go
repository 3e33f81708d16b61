package svgscene

import (
	"math"

	"github.com/benoitkugler/svgscene/svgpath"
)

// Rect is a <rect> element.
type Rect struct {
	Base
}

func newRect(el Element) *Rect {
	r := &Rect{Base: newBase(el)}
	r.readFields(el, X, Y, Width, Height)
	return r
}

func (r *Rect) Draw(s Surface) {
	if !r.Visible() {
		return
	}
	r.drawShape(s, func(s Surface) {
		s.Rect(r.X(), r.Y(), r.Width(), r.Height())
	}, nil)
}

func (r *Rect) Left() float64   { return r.X() }
func (r *Rect) Top() float64    { return r.Y() }
func (r *Rect) Right() float64  { return r.X() + r.Width() }
func (r *Rect) Bottom() float64 { return r.Y() + r.Height() }

// Circle is a <circle> element.
type Circle struct {
	Base
}

func newCircle(el Element) *Circle {
	c := &Circle{Base: newBase(el)}
	c.readFields(el, CX, CY, R)
	return c
}

func (c *Circle) Draw(s Surface) {
	if !c.Visible() {
		return
	}
	c.drawShape(s, func(s Surface) {
		s.Arc(c.value(CX), c.value(CY), c.value(R))
	}, nil)
}

func (c *Circle) Left() float64   { return c.value(CX) - c.value(R) }
func (c *Circle) Top() float64    { return c.value(CY) - c.value(R) }
func (c *Circle) Right() float64  { return c.value(CX) + c.value(R) }
func (c *Circle) Bottom() float64 { return c.value(CY) + c.value(R) }

// Ellipse is an <ellipse> element.
type Ellipse struct {
	Base
}

func newEllipse(el Element) *Ellipse {
	e := &Ellipse{Base: newBase(el)}
	e.readFields(el, CX, CY, RX, RY)
	return e
}

func (e *Ellipse) Draw(s Surface) {
	if !e.Visible() {
		return
	}
	e.drawShape(s, func(s Surface) {
		s.Ellipse(e.value(CX), e.value(CY), e.value(RX), e.value(RY))
	}, nil)
}

func (e *Ellipse) Left() float64   { return e.value(CX) - e.value(RX) }
func (e *Ellipse) Top() float64    { return e.value(CY) - e.value(RY) }
func (e *Ellipse) Right() float64  { return e.value(CX) + e.value(RX) }
func (e *Ellipse) Bottom() float64 { return e.value(CY) + e.value(RY) }

// Line is a <line> element. It is only drawn when it has a stroke.
type Line struct {
	Base
}

func newLine(el Element) *Line {
	l := &Line{Base: newBase(el)}
	l.readFields(el, X1, Y1, X2, Y2)
	return l
}

func (l *Line) Draw(s Surface) {
	if !l.Visible() || !l.hasStroke() {
		return
	}
	l.drawShape(s, func(s Surface) {
		s.MoveTo(l.value(X1), l.value(Y1))
		s.LineTo(l.value(X2), l.value(Y2))
	}, nil)
}

func (l *Line) Left() float64   { return math.Min(l.value(X1), l.value(X2)) }
func (l *Line) Top() float64    { return math.Min(l.value(Y1), l.value(Y2)) }
func (l *Line) Right() float64  { return math.Max(l.value(X1), l.value(X2)) }
func (l *Line) Bottom() float64 { return math.Max(l.value(Y1), l.value(Y2)) }

// pointBounds lazily computes the bounds of a fixed point list. The
// result is kept for the lifetime of the node.
type pointBounds struct {
	points []svgpath.Point
	done   bool
	box    [4]float64 // left, top, right, bottom
}

func (pb *pointBounds) bounds() [4]float64 {
	if pb.done {
		return pb.box
	}
	pb.done = true
	if len(pb.points) == 0 {
		return pb.box
	}
	box := [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pb.points {
		box[0] = math.Min(box[0], p.X)
		box[1] = math.Min(box[1], p.Y)
		box[2] = math.Max(box[2], p.X)
		box[3] = math.Max(box[3], p.Y)
	}
	pb.box = box
	return box
}

func (pb *pointBounds) Left() float64   { return pb.bounds()[0] }
func (pb *pointBounds) Top() float64    { return pb.bounds()[1] }
func (pb *pointBounds) Right() float64  { return pb.bounds()[2] }
func (pb *pointBounds) Bottom() float64 { return pb.bounds()[3] }

// Points returns the points of the shape, as read from the source.
func (pb *pointBounds) Points() []svgpath.Point { return pb.points }

func polyPath(points []svgpath.Point, closed bool) svgpath.Path {
	var p svgpath.Path
	for i, pt := range points {
		if i == 0 {
			p.Start(pt)
		} else {
			p.Line(pt)
		}
	}
	p.Stop(closed && len(points) > 0)
	return p
}

// Polygon is a <polygon> element. It is not drawn without points.
type Polygon struct {
	Base
	pointBounds
	path svgpath.Path
}

func newPolygon(el Element) *Polygon {
	pts := el.Points()
	return &Polygon{Base: newBase(el), pointBounds: pointBounds{points: pts}, path: polyPath(pts, true)}
}

func (p *Polygon) Draw(s Surface) {
	if !p.Visible() || len(p.points) == 0 {
		return
	}
	p.drawShape(s, nil, p.path)
}

// Polyline is a <polyline> element.
type Polyline struct {
	Base
	pointBounds
	path svgpath.Path
}

func newPolyline(el Element) *Polyline {
	pts := el.Points()
	return &Polyline{Base: newBase(el), pointBounds: pointBounds{points: pts}, path: polyPath(pts, false)}
}

func (p *Polyline) Draw(s Surface) {
	if !p.Visible() || len(p.points) == 0 {
		return
	}
	p.drawShape(s, nil, p.path)
}

// Path is a <path> element. Its bounds are computed from the endpoints of
// its segments: the control points of curves are not taken into account.
type Path struct {
	Base
	pointBounds
	data string
	path svgpath.Path
}

func newPath(el Element) *Path {
	d, _ := el.Attr("d")
	return &Path{
		Base:        newBase(el),
		pointBounds: pointBounds{points: svgpath.ParsePoints(d)},
		data:        d,
		path:        svgpath.Compile(d),
	}
}

// Data returns the path data read from the source.
func (p *Path) Data() string { return p.data }

func (p *Path) Draw(s Surface) {
	if !p.Visible() || len(p.path) == 0 {
		return
	}
	p.drawShape(s, nil, p.path)
}
