package svgscene

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgscene/internal/logging"
	"github.com/tdewolff/parse/v2/strconv"
)

// Supported style properties.
const (
	StyleFill             = "fill"
	StyleFillOpacity      = "fill-opacity"
	StyleStroke           = "stroke"
	StyleStrokeWidth      = "stroke-width"
	StyleStrokeOpacity    = "stroke-opacity"
	StyleStrokeLineJoin   = "stroke-linejoin"
	StyleStrokeLineCap    = "stroke-linecap"
	StyleStrokeMiterLimit = "stroke-miterlimit"
)

type styleProperty struct {
	name    string
	numeric bool
}

// styleProperties is ordered; cascading follows this order.
var styleProperties = [...]styleProperty{
	{StyleFill, false},
	{StyleFillOpacity, true},
	{StyleStrokeWidth, true},
	{StyleStrokeLineJoin, false},
	{StyleStrokeLineCap, false},
	{StyleStrokeMiterLimit, true},
	{StyleStroke, false},
	{StyleStrokeOpacity, true},
}

func lookupStyle(name string) (styleProperty, bool) {
	for _, p := range styleProperties {
		if p.name == name {
			return p, true
		}
	}
	return styleProperty{}, false
}

// StyleValue is the value of a style property. Numeric properties also
// store the parsed number.
type StyleValue struct {
	Raw    string
	Number float64
}

// truthy reports whether the value is considered as set when cascading:
// a numeric property equal to 0 is not propagated.
func (v StyleValue) truthy(numeric bool) bool {
	if numeric {
		return v.Number != 0
	}
	return v.Raw != ""
}

// parseStyleValue reads `raw` according to the property `p`. Numeric
// values accept a trailing unit, as in "2px".
func parseStyleValue(p styleProperty, raw string) (StyleValue, error) {
	raw = strings.TrimSpace(raw)
	if !p.numeric {
		return StyleValue{Raw: raw}, nil
	}
	f, n := strconv.ParseFloat([]byte(raw))
	if n == 0 {
		return StyleValue{}, fmt.Errorf("invalid number %q for %s", raw, p.name)
	}
	return StyleValue{Raw: raw, Number: f}, nil
}

// readStyles resolves the style properties of `el`: the inline "style"
// declarations come first, then the presentation attributes fill the
// properties not yet set.
func readStyles(el Element) map[string]StyleValue {
	out := make(map[string]StyleValue)
	log := logging.Logger()
	store := func(p styleProperty, raw string) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		v, err := parseStyleValue(p, raw)
		if err != nil {
			log.Warn("ignoring style value", "tag", el.Tag(), "error", err)
			return
		}
		out[p.name] = v
	}

	if inline, ok := el.Attr("style"); ok {
		for _, decl := range strings.Split(inline, ";") {
			name, value, _ := strings.Cut(decl, ":")
			if p, ok := lookupStyle(strings.TrimSpace(name)); ok {
				store(p, value)
			}
		}
	}
	for _, p := range styleProperties {
		if _, has := out[p.name]; has {
			continue
		}
		if value, ok := el.Attr(p.name); ok {
			store(p, value)
		}
	}
	return out
}
