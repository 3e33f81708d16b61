package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgxml"
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

var (
	red         = color.RGBA{255, 0, 0, 255}
	blue        = color.RGBA{0, 0, 255, 255}
	transparent = color.RGBA{}
)

func TestRenderFill(t *testing.T) {
	tree := buildTree(t, `<svg><rect x="2" y="2" width="6" height="6" fill="red"/></svg>`)
	img := RenderToImage(tree, 10, 10, svgpath.Identity)

	test.T(t, img.RGBAAt(5, 5), red)
	test.T(t, img.RGBAAt(2, 2), red)
	test.T(t, img.RGBAAt(7, 7), red)
	test.T(t, img.RGBAAt(0, 0), transparent)
	test.T(t, img.RGBAAt(8, 5), transparent)
}

func TestRenderMatrix(t *testing.T) {
	tree := buildTree(t, `<svg><rect x="2" y="2" width="6" height="6" fill="red"/></svg>`)
	img := RenderToImage(tree, 20, 20, svgpath.Identity.Scale(2, 2))

	test.T(t, img.RGBAAt(4, 4), red)
	test.T(t, img.RGBAAt(15, 15), red)
	test.T(t, img.RGBAAt(3, 3), transparent)
	test.T(t, img.RGBAAt(16, 16), transparent)
}

func TestRenderStroke(t *testing.T) {
	tree := buildTree(t, `<svg><line x1="0" y1="5" x2="10" y2="5" stroke="blue" stroke-width="2"/></svg>`)
	img := RenderToImage(tree, 10, 10, svgpath.Identity)

	test.T(t, img.RGBAAt(5, 4), blue)
	test.T(t, img.RGBAAt(5, 5), blue)
	test.T(t, img.RGBAAt(5, 2), transparent)
	test.T(t, img.RGBAAt(5, 7), transparent)
}

func TestRenderOpacity(t *testing.T) {
	tree := buildTree(t, `<svg><rect width="10" height="10" fill="red" fill-opacity="0.5"/></svg>`)
	img := RenderToImage(tree, 10, 10, svgpath.Identity)

	c := img.RGBAAt(5, 5)
	test.That(t, 126 <= c.A && c.A <= 128, c)
	test.That(t, c.R == c.A && c.G == 0 && c.B == 0, c)
}

func TestRenderGroup(t *testing.T) {
	tree := buildTree(t, `<svg>
		<g id="g" fill="blue" transform="translate(5,0)">
			<rect width="5" height="5"/>
			<rect x="0" y="5" width="5" height="5" fill="none"/>
		</g>
	</svg>`)
	img := RenderToImage(tree, 10, 10, svgpath.Identity)
	test.T(t, img.RGBAAt(7, 2), blue, "inherited fill")
	test.T(t, img.RGBAAt(2, 2), transparent)
	test.T(t, img.RGBAAt(7, 7), transparent)

	// hiding the group and re-drawing needs no parsing
	tree.Find("g").SetVisible(false)
	img = RenderToImage(tree, 10, 10, svgpath.Identity)
	test.T(t, img.RGBAAt(7, 2), transparent)
}

func TestRenderPNG(t *testing.T) {
	tree := buildTree(t, `<svg><circle cx="8" cy="8" r="6" fill="#00f" stroke="red"/></svg>`)
	var buf bytes.Buffer
	test.Error(t, png.Encode(&buf, RenderToImage(tree, 16, 16, svgpath.Identity)))

	img, err := png.Decode(&buf)
	test.Error(t, err)
	test.T(t, img.Bounds(), image.Rect(0, 0, 16, 16))
	r, g, b, a := img.At(8, 8).RGBA()
	test.T(t, [4]uint32{r, g, b, a}, [4]uint32{0, 0, 0xffff, 0xffff})
}
