package svgpdf

import (
	"bytes"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgxml"
	"github.com/jung-kurt/gofpdf"
	"github.com/tdewolff/test"
)

func buildTree(t *testing.T, src string) *svgscene.Tree {
	t.Helper()
	doc, err := svgxml.Parse(strings.NewReader(src))
	test.Error(t, err)
	tree, err := doc.Build(svgscene.StrictErrorMode)
	test.Error(t, err)
	return tree
}

func newPDF() *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: 100, Ht: 100}})
	pdf.SetCompression(false)
	pdf.AddPage()
	return pdf
}

func TestRenderToPDF(t *testing.T) {
	tree := buildTree(t, `<svg>
		<rect x="10" y="10" width="30" height="20" fill="red" fill-opacity="0.5"/>
		<path d="M0 0 Q 50 100 100 0" fill="none" stroke="blue" stroke-linecap="round"/>
	</svg>`)
	var buf bytes.Buffer
	err := RenderToPDF(tree, 100, 100, svgpath.Identity, &buf)
	test.Error(t, err)
	test.That(t, buf.Len() > 0)
	test.That(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRendererOperators(t *testing.T) {
	pdf := newPDF()
	rd := NewRenderer(pdf)
	canvas := svgdraw.NewCanvas(rd)

	canvas.SetFillPaint(color.RGBA{255, 0, 0, 255})
	canvas.Rect(10, 20, 30, 40)
	canvas.Fill(nil)

	canvas.BeginPath()
	canvas.SetStrokePaint(color.RGBA{0, 0, 255, 255})
	canvas.SetLineWidth(2)
	canvas.SetLineCap(svgdraw.RoundCap)
	canvas.Translate(50, 0)
	canvas.MoveTo(0, 10)
	canvas.LineTo(20, 10)
	canvas.Stroke(nil)

	var buf bytes.Buffer
	test.Error(t, pdf.Output(&buf))
	out := buf.String()
	for _, op := range []string{
		"1.000 0.000 0.000 rg",
		"10.00 80.00 m", // the origin of the page is at the bottom
		"h\nf\n",
		"0.000 0.000 1.000 RG",
		"2.00 w",
		"1 J",
		"50.00 90.00 m",
		"70.00 90.00 l",
		"\nS\n",
	} {
		test.That(t, strings.Contains(out, op), op)
	}

	box := rd.Extent()
	test.T(t, box, Box{Min: svgpath.Point{X: 10, Y: 10}, Max: svgpath.Point{X: 70, Y: 60}})
}

func TestRendererEmpty(t *testing.T) {
	rd := NewRenderer(newPDF())
	test.That(t, rd.Extent().IsEmpty())

	canvas := svgdraw.NewCanvas(rd)
	canvas.Fill(nil)
	test.That(t, rd.Extent().IsEmpty())
}

func randPoint(r *rand.Rand) svgpath.Point {
	return svgpath.Point{X: r.Float64()*200 - 100, Y: r.Float64()*200 - 100}
}

// sampleBox approximates the bounding box of `curve`.
func sampleBox(curve segment) Box {
	box := emptyBox
	const n = 1000
	for i := 0; i <= n; i++ {
		p := curve.at(float64(i) / n)
		box = box.union(Box{p, p})
	}
	return box
}

func TestCurveBox(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		curves := []segment{
			line{randPoint(r), randPoint(r)},
			quadBezier{randPoint(r), randPoint(r), randPoint(r)},
			cubicBezier{randPoint(r), randPoint(r), randPoint(r), randPoint(r)},
		}
		for _, curve := range curves {
			exact, sampled := curveBox(curve), sampleBox(curve)
			// the exact box contains the sampled one, and is close to it
			test.That(t, exact.Min.X <= sampled.Min.X+1e-9 && exact.Min.Y <= sampled.Min.Y+1e-9, curve)
			test.That(t, exact.Max.X >= sampled.Max.X-1e-9 && exact.Max.Y >= sampled.Max.Y-1e-9, curve)
			test.FloatDiff(t, exact.Min.X, sampled.Min.X, 0.1)
			test.FloatDiff(t, exact.Min.Y, sampled.Min.Y, 0.1)
			test.FloatDiff(t, exact.Max.X, sampled.Max.X, 0.1)
			test.FloatDiff(t, exact.Max.Y, sampled.Max.Y, 0.1)
		}
	}
}

func TestCurveBoxExtrema(t *testing.T) {
	// symmetric arch, reaching y = 50 at t = 0.5
	box := curveBox(quadBezier{{X: 0, Y: 0}, {X: 50, Y: 100}, {X: 100, Y: 0}})
	test.T(t, box, Box{Min: svgpath.Point{X: 0, Y: 0}, Max: svgpath.Point{X: 100, Y: 50}})

	box = curveBox(cubicBezier{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}})
	test.Float(t, box.Max.Y, 75)
	test.Float(t, box.Min.X, 0)
	test.Float(t, box.Max.X, 100)
}
