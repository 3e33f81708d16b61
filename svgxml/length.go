package svgxml

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/svgscene/internal/logging"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// pixels per unit, at 96 dpi
var unitToPixels = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96. / 72,
	"pc": 16,
	"mm": 96. / 25.4,
	"cm": 96. / 2.54,
	"in": 96,
}

type length struct {
	value float64
	unit  string
}

// parseLength reads a number followed by an optional unit.
func parseLength(s string) (length, error) {
	b := []byte(strings.TrimSpace(s))
	num, unit := parse.Dimension(b)
	if num == 0 || num+unit != len(b) {
		return length{}, fmt.Errorf("invalid length %q", s)
	}
	f, n := strconv.ParseFloat(b[:num])
	if n != num {
		return length{}, fmt.Errorf("invalid length %q", s)
	}
	return length{value: f, unit: strings.ToLower(string(b[num:]))}, nil
}

// pixels returns the absolute value of the length. Unknown units
// are treated as pixels.
func (l length) pixels() float64 {
	if factor, ok := unitToPixels[l.unit]; ok {
		return l.value * factor
	}
	logging.Logger().Warn("unsupported length unit", "unit", l.unit)
	return l.value
}

// percentAxis indicates which viewport dimension a percentage
// of an attribute refers to.
type percentAxis uint8

const (
	horizontal percentAxis = iota
	vertical
	diagonal
)

var attributeAxis = map[string]percentAxis{
	"x":      horizontal,
	"cx":     horizontal,
	"x1":     horizontal,
	"x2":     horizontal,
	"width":  horizontal,
	"rx":     horizontal,
	"y":      vertical,
	"cy":     vertical,
	"y1":     vertical,
	"y2":     vertical,
	"height": vertical,
	"ry":     vertical,
	"r":      diagonal,
}

// Number returns the attribute `name` resolved to user units.
// Percentages are resolved against the viewport of the document.
func (e *Element) Number(name string) (float64, bool) {
	v, ok := e.attrs[name]
	if !ok {
		return 0, false
	}
	l, err := parseLength(v)
	if err != nil {
		logging.Logger().Warn("ignoring attribute", "tag", e.name, "attribute", name, "error", err)
		return 0, false
	}
	if l.unit != "%" {
		return l.pixels(), true
	}

	w, h := e.doc.Viewport()
	var ref float64
	switch attributeAxis[name] {
	case horizontal:
		ref = w
	case vertical:
		ref = h
	case diagonal:
		ref = math.Hypot(w, h) / math.Sqrt2
	}
	return l.value * ref / 100, true
}
