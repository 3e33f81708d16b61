// Package svgscene builds an editable tree of drawables from SVG markup and
// renders it on a drawing surface.
//
// Each node keeps the values read from the markup as an immutable initial
// snapshot, and a sparse overlay of the values changed by the caller.
// Changing a value never requires to parse the source again: a new call
// to Draw is enough. RestoreState removes the overlay.
//
// A node may be linked to a reference node (by default, the group
// containing it): when the reference is moved or resized, the node follows.
package svgscene

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/benoitkugler/svgscene/internal/logging"
	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgpath"
)

var (
	ErrSelfReference      = errors.New("a drawable can't be its own reference")
	ErrForeignNode        = errors.New("drawable belongs to another tree")
	ErrIndexOutOfRange    = errors.New("child index out of range")
	ErrUnknownField       = errors.New("field not supported by the drawable")
	ErrUnknownStyle       = errors.New("unsupported style property")
	ErrUnsupportedElement = errors.New("unsupported svg element")
)

// Element is a node of the markup source.
type Element interface {
	// Tag returns the local name of the element, such as "rect".
	Tag() string
	Children() []Element
	// Attr returns the raw value of the attribute `name`.
	Attr(name string) (string, bool)
	// Number returns the numeric value of the geometric attribute `name`,
	// with units resolved.
	Number(name string) (float64, bool)
	// Points returns the "points" list of polygons and polylines.
	Points() []svgpath.Point
	// Transforms returns the "transform" list, in declaration order.
	Transforms() []svgpath.Transform
}

// Surface is the drawing target, with the semantic of a canvas 2D context:
// geometry is accumulated in a current path, mapped by the current
// transformation, and painted by Fill and Stroke.
type Surface interface {
	Save()
	Restore()

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rect(x, y, w, h float64)
	Arc(cx, cy, r float64)
	Ellipse(cx, cy, rx, ry float64)

	SetFillPaint(c color.Color)
	SetStrokePaint(c color.Color)
	GlobalAlpha() float64
	SetGlobalAlpha(alpha float64)
	SetLineWidth(w float64)
	SetLineJoin(j svgdraw.JoinMode)
	SetLineCap(c svgdraw.CapMode)
	SetMiterLimit(limit float64)

	// Fill and Stroke paint `geom`, or the current path when `geom` is nil.
	Fill(geom svgpath.Path)
	Stroke(geom svgpath.Path)

	Translate(x, y float64)
	Scale(x, y float64)
	Transform(m svgpath.Matrix2D)
}

var _ Surface = (*svgdraw.Canvas)(nil)

// SetLogger enables logging of the malformed input skipped while building
// and drawing trees. Passing nil disables it.
func SetLogger(l *slog.Logger) { logging.Set(l) }
