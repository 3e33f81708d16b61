// Package svgpath reads SVG path data and transform lists.
//
// It offers two readings of a path "d" attribute: ParsePoints, which only
// collects the endpoints of every segment (enough to compute bounds), and
// Compile, which produces the full geometry as a Path consumed by the
// painting drivers.
package svgpath

import (
	"fmt"
	"strings"
)

type pathCommand uint8

const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

type QuadTo [2]Point

type CubicTo [3]Point

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%.3f,%.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%.3f,%.3f", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%.3f,%.3f,%.3f,%.3f", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%.3f,%.3f,%.3f,%.3f,%.3f,%.3f",
				op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transformed returns a copy of the path with every point mapped by m.
func (p Path) Transformed(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.TransformPoint(Point(op)))
		case LineTo:
			out[i] = LineTo(m.TransformPoint(Point(op)))
		case QuadTo:
			out[i] = QuadTo{m.TransformPoint(op[0]), m.TransformPoint(op[1])}
		case CubicTo:
			out[i] = CubicTo{m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2])}
		case Close:
			out[i] = op
		}
	}
	return out
}
