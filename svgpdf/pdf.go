// Package svgpdf implements a PDF backend to render scenes,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgdraw.Driver  = (*Renderer)(nil)
	_ svgdraw.Filler  = (*filler)(nil)
	_ svgdraw.Stroker = (*stroker)(nil)
)

// Renderer is a svgdraw.Driver writing PDF path operators.
type Renderer struct {
	filler  filler
	stroker stroker
	extent  Box
}

// implements the common path commands,
// shared by the filler and the stroker.
// Since graphic state operators are not allowed inside a
// path object, the path is buffered until Draw.
type pather struct {
	pdf    *gofpdf.Fpdf
	path   svgpath.Path
	a      svgpath.Point // current point, used to compute the bounding box
	box    Box           // bounding box of the current path
	extent *Box          // union of the painted paths
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
	options svgdraw.StrokeOptions
}

// NewRenderer return a renderer which will
// write to the current page of `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	rd := &Renderer{extent: emptyBox}
	rd.filler.pather = pather{pdf: pdf, extent: &rd.extent}
	rd.stroker.pather = pather{pdf: pdf, extent: &rd.extent}
	return rd
}

// Extent returns the bounding box of everything painted so far,
// in page coordinates.
func (rd *Renderer) Extent() Box { return rd.extent }

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgdraw.Filler, svgdraw.Stroker) {
	return &rd.filler, &rd.stroker
}

// RenderToPDF draws `tree` on a single page of size `w` x `h` points,
// mapping the coordinates of the tree with `m`, and writes the document
// to `out`.
func RenderToPDF(tree *svgscene.Tree, w, h float64, m svgpath.Matrix2D, out io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	canvas := svgdraw.NewCanvas(NewRenderer(pdf))
	canvas.SetMatrix(m)
	tree.Draw(canvas)
	return pdf.Output(out)
}

func fixedTof(a fixed.Point26_6) svgpath.Point {
	return svgpath.Point{X: float64(a.X) / 64, Y: float64(a.Y) / 64}
}

func (p *pather) Clear() {
	p.path = p.path[:0]
	p.box = emptyBox
	p.a = svgpath.Point{}
}

func (p *pather) Start(a fixed.Point26_6) {
	p.a = fixedTof(a)
	p.path.Start(p.a)
	p.box = p.box.union(Box{p.a, p.a}) // degenerate case
}

func (p *pather) Line(b fixed.Point26_6) {
	pb := fixedTof(b)
	p.path.Line(pb)
	p.box = p.box.union(curveBox(line{p.a, pb}))
	p.a = pb
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	pb, pc := fixedTof(b), fixedTof(c)
	p.path.QuadBezier(pb, pc)
	p.box = p.box.union(curveBox(quadBezier{p.a, pb, pc}))
	p.a = pc
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	pb, pc, pd := fixedTof(b), fixedTof(c), fixedTof(d)
	p.path.CubeBezier(pb, pc, pd)
	p.box = p.box.union(curveBox(cubicBezier{p.a, pb, pc, pd}))
	p.a = pd
}

func (p *pather) Stop(closeLoop bool) {
	p.path.Stop(closeLoop)
}

// writePath emits the buffered path, and records its extent.
func (p *pather) writePath() {
	var current svgpath.Point
	for _, op := range p.path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			p.pdf.MoveTo(op.X, op.Y)
			current = svgpath.Point(op)
		case svgpath.LineTo:
			p.pdf.LineTo(op.X, op.Y)
			current = svgpath.Point(op)
		case svgpath.QuadTo:
			// PDF has no quadratic curves: elevate to a cubic one
			c1 := svgpath.Point{X: current.X + 2./3*(op[0].X-current.X), Y: current.Y + 2./3*(op[0].Y-current.Y)}
			c2 := svgpath.Point{X: op[1].X + 2./3*(op[0].X-op[1].X), Y: op[1].Y + 2./3*(op[0].Y-op[1].Y)}
			p.pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, op[1].X, op[1].Y)
			current = op[1]
		case svgpath.CubicTo:
			p.pdf.CurveBezierCubicTo(op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
			current = op[2]
		case svgpath.Close:
			p.pdf.ClosePath()
		}
	}
	if len(p.path) != 0 {
		*p.extent = p.extent.union(p.box)
	}
}

// setAlpha applies the alpha of `c`, multiplied by `opacity`, and returns
// the color components.
func (p *pather) setAlpha(c color.Color, opacity float64) (r, g, b int) {
	if c == nil {
		c = color.Transparent
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha := opacity * float64(nc.A) / 255
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	p.pdf.SetAlpha(alpha, "Normal")
	return int(nc.R), int(nc.G), int(nc.B)
}

func (f *filler) SetColor(c color.Color, opacity float64) {
	f.pdf.SetFillColor(f.setAlpha(c, opacity))
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	f.writePath()
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (s *stroker) SetColor(c color.Color, opacity float64) {
	s.pdf.SetDrawColor(s.setAlpha(c, opacity))
}

func (s *stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	s.options = options
}

var (
	joinToStyle = [...]string{
		svgdraw.Round:     "round",
		svgdraw.Bevel:     "bevel",
		svgdraw.Miter:     "miter",
		svgdraw.MiterClip: "miter",
		svgdraw.Arc:       "round",
		svgdraw.ArcClip:   "round",
	}

	capToStyle = [...]string{
		svgdraw.NilCap:       "butt",
		svgdraw.ButtCap:      "butt",
		svgdraw.SquareCap:    "square",
		svgdraw.RoundCap:     "round",
		svgdraw.CubicCap:     "round",
		svgdraw.QuadraticCap: "round",
	}
)

func (s *stroker) Draw() {
	opts := s.options
	s.pdf.SetLineWidth(float64(opts.LineWidth) / 64)
	s.pdf.SetLineJoinStyle(joinToStyle[opts.Join.LineJoin])
	s.pdf.SetLineCapStyle(capToStyle[opts.Join.LeadLineCap])
	s.pdf.SetDashPattern(opts.Dash.Dash, opts.Dash.DashOffset)
	s.writePath()
	s.pdf.DrawPath("S")
}
