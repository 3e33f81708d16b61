package svgscene

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errPaint = errors.New("invalid paint")

// ParsePaint parses a fill or stroke value: a color keyword, #rgb,
// #rrggbb, rgb() or rgba(). It returns a nil color for "none".
func ParsePaint(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return nil, errPaint
	case "none":
		return nil, nil
	case "transparent":
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	if v[0] == '#' {
		return parseHexColor(v[1:])
	}
	if inner, ok := cutFunction(v, "rgba"); ok {
		return parseRGB(inner, 4)
	}
	if inner, ok := cutFunction(v, "rgb"); ok {
		return parseRGB(inner, 3)
	}
	return nil, fmt.Errorf("%w: %q", errPaint, s)
}

func cutFunction(v, name string) (string, bool) {
	if !strings.HasPrefix(v, name+"(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[len(name)+1 : len(v)-1], true
}

func parseHexColor(hex string) (color.Color, error) {
	var digits [6]uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			d, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: #%s", errPaint, hex)
			}
			digits[2*i] = uint8(d)
			digits[2*i+1] = uint8(d)
		}
	case 6:
		for i := 0; i < 6; i++ {
			d, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: #%s", errPaint, hex)
			}
			digits[i] = uint8(d)
		}
	default:
		return nil, fmt.Errorf("%w: #%s", errPaint, hex)
	}
	return color.NRGBA{
		R: digits[0]<<4 | digits[1],
		G: digits[2]<<4 | digits[3],
		B: digits[4]<<4 | digits[5],
		A: 0xff,
	}, nil
}

func parseRGB(inner string, nbArgs int) (color.Color, error) {
	vals := strings.Split(inner, ",")
	if len(vals) != nbArgs {
		return nil, fmt.Errorf("%w: expected %d components", errPaint, nbArgs)
	}
	var c [3]uint8
	for i := range c {
		var err error
		c[i], err = parseColorValue(strings.TrimSpace(vals[i]))
		if err != nil {
			return nil, err
		}
	}
	alpha := uint8(0xff)
	if nbArgs == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(vals[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errPaint, err)
		}
		alpha = uint8(clamp(a, 0, 1) * 0xff)
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: alpha}, nil
}

func parseColorValue(v string) (uint8, error) {
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", errPaint, err)
		}
		return uint8(clamp(n, 0, 100) * 0xff / 100), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errPaint, err)
	}
	return uint8(clamp(float64(n), 0, 255)), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
