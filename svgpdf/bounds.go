package svgpdf

import (
	"math"

	"github.com/benoitkugler/svgscene/svgpath"
)

// Box is an axis aligned rectangle.
type Box struct {
	Min, Max svgpath.Point
}

var emptyBox = Box{
	Min: svgpath.Point{X: math.Inf(1), Y: math.Inf(1)},
	Max: svgpath.Point{X: math.Inf(-1), Y: math.Inf(-1)},
}

// IsEmpty returns true if the box contains no point.
func (b Box) IsEmpty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

func (b Box) union(other Box) Box {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box{
		Min: svgpath.Point{X: math.Min(b.Min.X, other.Min.X), Y: math.Min(b.Min.Y, other.Min.Y)},
		Max: svgpath.Point{X: math.Max(b.Max.X, other.Max.X), Y: math.Max(b.Max.Y, other.Max.Y)},
	}
}

// segment is a bezier curve of degree 1 to 3.
type segment interface {
	// the values of t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// the point at time t
	at(t float64) svgpath.Point
}

type line [2]svgpath.Point

func (line) criticalPoints() (tX, tY []float64) { return nil, nil }

func (l line) at(t float64) svgpath.Point {
	return svgpath.Point{X: (l[1].X-l[0].X)*t + l[0].X, Y: (l[1].Y-l[0].Y)*t + l[0].Y}
}

type quadBezier [3]svgpath.Point

// x = At^2 + Bt + C with
// A = p0 + p2 - 2p1, B = 2(p1 - p0), C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// the derivative of a quadratic curve is at + b
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - 2*p1 + p0), 2 * (p1 - p0)
}

func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	aX, bX := quadraticDerivative(cu[0].X, cu[1].X, cu[2].X)
	aY, bY := quadraticDerivative(cu[0].Y, cu[1].Y, cu[2].Y)
	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) at(t float64) svgpath.Point {
	return svgpath.Point{
		X: bezierQuad(cu[0].X, cu[1].X, cu[2].X, t),
		Y: bezierQuad(cu[0].Y, cu[1].Y, cu[2].Y, t),
	}
}

type cubicBezier [4]svgpath.Point

// x = At^3 + Bt^2 + Ct + D with
// A = p3 - 3p2 + 3p1 - p0, B = 3p2 - 6p1 + 3p0, C = 3p1 - 3p0, D = p0
func bezierCubic(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// the derivative of a cubic curve is at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0].X, cu[1].X, cu[2].X, cu[3].X)
	aY, bY, cY := cubicDerivative(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) at(t float64) svgpath.Point {
	return svgpath.Point{
		X: bezierCubic(cu[0].X, cu[1].X, cu[2].X, cu[3].X, t),
		Y: bezierCubic(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y, t),
	}
}

// curveBox returns the tight bounding box of `curve`: the extrema are
// reached either at the end points or where the derivative vanishes.
func curveBox(curve segment) Box {
	tX, tY := curve.criticalPoints()
	box := emptyBox
	for _, t := range append(append(tX, 0, 1), tY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		p := curve.at(t)
		box = box.union(Box{p, p})
	}
	return box
}
