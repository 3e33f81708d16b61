package svgpath

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestMatrix(t *testing.T) {
	m := Identity.Translate(10, 20).Scale(2, 3)
	x, y := m.Transform(1, 1)
	test.Float(t, x, 12)
	test.Float(t, y, 23)
	test.Float(t, m.Determinant(), 6)

	x, y = Identity.Rotate(math90).Transform(1, 0)
	test.Float(t, x, 0)
	test.Float(t, y, 1)

	test.T(t, Identity.Mult(m), m)
	test.T(t, m.Mult(Identity), m)
}

const math90 = 1.5707963267948966

func TestParseTransforms(t *testing.T) {
	var tests = []struct {
		attr   string
		kinds  []TransformKind
		in     Point
		expect Point
	}{
		{"translate(10 20)", []TransformKind{TransformTranslate}, Point{1, 1}, Point{11, 21}},
		{"translate(10)", []TransformKind{TransformTranslate}, Point{1, 1}, Point{11, 1}},
		{"scale(2)", []TransformKind{TransformScale}, Point{1, 3}, Point{2, 6}},
		{"scale(2, 3)", []TransformKind{TransformScale}, Point{1, 1}, Point{2, 3}},
		{"translate(10 20) scale(2)", []TransformKind{TransformTranslate, TransformScale}, Point{1, 1}, Point{12, 22}},
		{"rotate(90)", []TransformKind{TransformRotate}, Point{1, 0}, Point{0, 1}},
		{"rotate(90, 5, 5)", []TransformKind{TransformRotate}, Point{10, 5}, Point{5, 10}},
		{"matrix(1 0 0 1 3 4)", []TransformKind{TransformMatrix}, Point{1, 1}, Point{4, 5}},
		{"skewX(45)", []TransformKind{TransformSkewX}, Point{0, 1}, Point{1, 1}},
		{"skewY(45)", []TransformKind{TransformSkewY}, Point{1, 0}, Point{1, 1}},
		{" , translate(1,1)", []TransformKind{TransformTranslate}, Point{0, 0}, Point{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			list, err := ParseTransforms(tt.attr)
			test.Error(t, err)
			kinds := make([]TransformKind, len(list))
			for i, tr := range list {
				kinds[i] = tr.Kind
			}
			test.T(t, kinds, tt.kinds)
			got := Compose(list).TransformPoint(tt.in)
			test.Float(t, got.X, tt.expect.X)
			test.Float(t, got.Y, tt.expect.Y)
		})
	}
}

func TestParseTransformsErrors(t *testing.T) {
	for _, attr := range []string{
		"translate(1 2 3)",
		"rotate(1 2)",
		"matrix(1 2 3)",
		"perspective(1)",
		"translate 1 2)",
	} {
		t.Run(attr, func(t *testing.T) {
			_, err := ParseTransforms(attr)
			test.That(t, errors.Is(err, ErrParamMismatch), err)
		})
	}

	list, err := ParseTransforms("")
	test.Error(t, err)
	test.T(t, len(list), 0)
}

func TestTransformKindString(t *testing.T) {
	test.String(t, TransformSkewX.String(), "skewX")
	test.String(t, TransformKind(42).String(), "<unknown TransformKind>")
}
