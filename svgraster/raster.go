// Package svgraster implements a raster backend to render scenes,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/srwiley/rasterx"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer is a svgdraw.Driver drawing with rasterx.
type Renderer struct {
	filler  filler  // we use separated instance
	stroker stroker // to avoid shared state
}

// NewRenderer returns a renderer sending its output to `scanner`.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		filler:  filler{rasterx.NewFiller(width, height, scanner)},
		stroker: stroker{rasterx.NewDasher(width, height, scanner)},
	}
}

// NewCanvas returns a canvas painting on `img`, using a ScannerGV.
func NewCanvas(img draw.Image) *svgdraw.Canvas {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, b)
	return svgdraw.NewCanvas(NewRenderer(w, h, scanner))
}

// RenderToImage draws `tree` into a new image of size `w` x `h`, mapping
// the coordinates of the tree with `m`.
func RenderToImage(tree *svgscene.Tree, w, h int, m svgpath.Matrix2D) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	canvas := NewCanvas(img)
	canvas.SetMatrix(m)
	tree.Draw(canvas)
	return img
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgdraw.Filler, svgdraw.Stroker) {
	return rd.filler, rd.stroker
}

func setColor(scanner rasterx.Scanner, c color.Color, opacity float64) {
	if c == nil {
		c = color.Transparent
	}
	scanner.SetColor(rasterx.ApplyOpacity(c, opacity))
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c color.Color, opacity float64) { setColor(f.Scanner, c, opacity) }

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(c color.Color, opacity float64) { setColor(s.Scanner, c, opacity) }

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdraw.Round:     rasterx.Round,
		svgdraw.Bevel:     rasterx.Bevel,
		svgdraw.Miter:     rasterx.Miter,
		svgdraw.MiterClip: rasterx.MiterClip,
		svgdraw.Arc:       rasterx.Arc,
		svgdraw.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdraw.ButtCap:      rasterx.ButtCap,
		svgdraw.SquareCap:    rasterx.SquareCap,
		svgdraw.RoundCap:     rasterx.RoundCap,
		svgdraw.CubicCap:     rasterx.CubicCap,
		svgdraw.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgdraw.FlatGap:      rasterx.FlatGap,
		svgdraw.RoundGap:     rasterx.RoundGap,
		svgdraw.CubicGap:     rasterx.CubicGap,
		svgdraw.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (s stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	s.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}
