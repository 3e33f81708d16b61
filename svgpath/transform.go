package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrParamMismatch = errors.New("svg attribute parameter mismatch")

// TransformKind identifies how a transform was declared.
type TransformKind uint8

const (
	TransformMatrix TransformKind = iota
	TransformTranslate
	TransformScale
	TransformRotate
	TransformSkewX
	TransformSkewY
)

func (k TransformKind) String() string {
	switch k {
	case TransformMatrix:
		return "matrix"
	case TransformTranslate:
		return "translate"
	case TransformScale:
		return "scale"
	case TransformRotate:
		return "rotate"
	case TransformSkewX:
		return "skewX"
	case TransformSkewY:
		return "skewY"
	default:
		return "<unknown TransformKind>"
	}
}

// Transform is one entry of a transform list, normalized to a matrix.
type Transform struct {
	Kind   TransformKind
	Matrix Matrix2D
}

// Compose returns the matrix equivalent to applying the list,
// the leftmost entry being the outermost.
func Compose(list []Transform) Matrix2D {
	m := Identity
	for _, t := range list {
		m = m.Mult(t.Matrix)
	}
	return m
}

func readTransform(name string, args []float64) (Transform, error) {
	ln := len(args)
	switch name {
	case "rotate":
		var m Matrix2D
		if ln == 1 {
			m = Identity.Rotate(args[0] * math.Pi / 180)
		} else if ln == 3 {
			m = Identity.Translate(args[1], args[2]).
				Rotate(args[0]*math.Pi/180).
				Translate(-args[1], -args[2])
		} else {
			return Transform{}, ErrParamMismatch
		}
		return Transform{TransformRotate, m}, nil
	case "translate":
		if ln == 1 {
			return Transform{TransformTranslate, Identity.Translate(args[0], 0)}, nil
		} else if ln == 2 {
			return Transform{TransformTranslate, Identity.Translate(args[0], args[1])}, nil
		}
	case "skewx":
		if ln == 1 {
			return Transform{TransformSkewX, Identity.SkewX(args[0] * math.Pi / 180)}, nil
		}
	case "skewy":
		if ln == 1 {
			return Transform{TransformSkewY, Identity.SkewY(args[0] * math.Pi / 180)}, nil
		}
	case "scale":
		if ln == 1 {
			return Transform{TransformScale, Identity.Scale(args[0], args[0])}, nil
		} else if ln == 2 {
			return Transform{TransformScale, Identity.Scale(args[0], args[1])}, nil
		}
	case "matrix":
		if ln == 6 {
			return Transform{TransformMatrix, Matrix2D{
				A: args[0],
				B: args[1],
				C: args[2],
				D: args[3],
				E: args[4],
				F: args[5],
			}}, nil
		}
	default:
		return Transform{}, fmt.Errorf("unknown transform %q: %w", name, ErrParamMismatch)
	}
	return Transform{}, ErrParamMismatch
}

// ParseTransforms parses a transform attribute such as
// "translate(10 20) rotate(45, 5, 5)", keeping the declaration order.
func ParseTransforms(v string) ([]Transform, error) {
	var out []Transform
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		t = strings.TrimLeft(t, ", ")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return out, ErrParamMismatch // badly formed transformation
		}
		tr, err := readTransform(strings.ToLower(strings.TrimSpace(d[0])), ParseNumbers(d[1]))
		if err != nil {
			return out, err
		}
		out = append(out, tr)
	}
	return out, nil
}
