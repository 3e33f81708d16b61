package svgpath

import "math"

// Point is an absolute position in user space.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// reflect returns the reflection of ctrl about p.
func (p Point) reflect(ctrl Point) Point { return Point{2*p.X - ctrl.X, 2*p.Y - ctrl.Y} }

// Matrix2D is an affine matrix
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a * b: b is applied first.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate returns a matrix translating by (x, y) before applying a.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns a matrix scaling by (x, y) before applying a.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate returns a matrix rotating by theta radians before applying a.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{c, s, -s, c, 0, 0})
}

// SkewX returns a matrix skewing along x by theta radians before applying a.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY returns a matrix skewing along y by theta radians before applying a.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Transform applies the matrix to (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return x*a.A + y*a.C + a.E, x*a.B + y*a.D + a.F
}

// TransformPoint applies the matrix to p.
func (a Matrix2D) TransformPoint(p Point) Point {
	x, y := a.Transform(p.X, p.Y)
	return Point{x, y}
}

// Determinant returns AD - BC.
func (a Matrix2D) Determinant() float64 {
	return a.A*a.D - a.B*a.C
}
