package svgpath

import (
	"math"

	"github.com/benoitkugler/svgscene/internal/logging"
)

// Compile returns the geometry described by the path data d: lines,
// quadratic and cubic curves, with smooth curves reflected and elliptical
// arcs approximated by cubics. Malformed input is tolerated the same way
// as in ParsePoints.
func Compile(d string) Path {
	c := compiler{d: d}
	c.run()
	return c.path
}

type compiler struct {
	d    string
	pos  int
	path Path

	current, start Point
	// last control points, equal to current when the previous segment
	// was not a cubic (resp. quadratic)
	lastc, lastq Point
	open         bool
}

func (c *compiler) run() {
	log := logging.Logger()
	for iter := 0; c.pos < len(c.d); iter++ {
		if iter > len(c.d) {
			return
		}
		ch := c.d[c.pos]
		switch {
		case isCommand(ch):
			c.command(ch)
		case isLetter(ch):
			log.Warn("unknown path command", "command", string(ch), "position", c.pos)
			c.pos = skipArgs(c.d, c.pos)
		default:
			c.pos++
		}
	}
}

// moveTo starts a new subpath, implicitly ending the current one.
func (c *compiler) moveTo(p Point) {
	c.path.Start(p)
	c.start, c.open = p, true
	c.set(p, p, p)
}

// ensureStart makes sure drawing commands have a subpath to extend.
func (c *compiler) ensureStart() {
	if !c.open {
		c.path.Start(c.current)
		c.start, c.open = c.current, true
	}
}

func (c *compiler) set(p, lastc, lastq Point) {
	c.current, c.lastc, c.lastq = p, lastc, lastq
}

func (c *compiler) lineTo(p Point) {
	c.ensureStart()
	c.path.Line(p)
	c.set(p, p, p)
}

func (c *compiler) command(ch byte) {
	relative := 'a' <= ch && ch <= 'z'
	if ch == 'z' || ch == 'Z' {
		if c.open {
			c.path.Stop(true)
		}
		c.open = false
		c.set(c.start, c.start, c.start)
		c.pos++
		return
	}

	a, next := args(c.d, c.pos)
	c.pos = next

	abs := func(i int) Point {
		p := Point{a[i], a[i+1]}
		if relative {
			return c.current.Add(p)
		}
		return p
	}

	switch ch {
	case 'm', 'M':
		if len(a) < 2 {
			return
		}
		c.moveTo(abs(0))
		for i := 2; i+1 < len(a); i += 2 {
			c.lineTo(abs(i))
		}
	case 'l', 'L':
		for i := 0; i+1 < len(a); i += 2 {
			c.lineTo(abs(i))
		}
	case 'h', 'H':
		for _, x := range a {
			p := c.current
			if relative {
				p.X += x
			} else {
				p.X = x
			}
			c.lineTo(p)
		}
	case 'v', 'V':
		for _, y := range a {
			p := c.current
			if relative {
				p.Y += y
			} else {
				p.Y = y
			}
			c.lineTo(p)
		}
	case 'c', 'C':
		for i := 0; i+5 < len(a); i += 6 {
			c1, c2, end := abs(i), abs(i+2), abs(i+4)
			c.ensureStart()
			c.path.CubeBezier(c1, c2, end)
			c.set(end, c2, end)
		}
	case 's', 'S':
		for i := 0; i+3 < len(a); i += 4 {
			c1 := c.current.reflect(c.lastc)
			c2, end := abs(i), abs(i+2)
			c.ensureStart()
			c.path.CubeBezier(c1, c2, end)
			c.set(end, c2, end)
		}
	case 'q', 'Q':
		for i := 0; i+3 < len(a); i += 4 {
			ctrl, end := abs(i), abs(i+2)
			c.ensureStart()
			c.path.QuadBezier(ctrl, end)
			c.set(end, end, ctrl)
		}
	case 't', 'T':
		for i := 0; i+1 < len(a); i += 2 {
			ctrl := c.current.reflect(c.lastq)
			end := abs(i)
			c.ensureStart()
			c.path.QuadBezier(ctrl, end)
			c.set(end, end, ctrl)
		}
	case 'a', 'A':
		for i := 0; i+6 < len(a); i += 7 {
			c.arc(a[i:i+7], abs(i+5))
		}
	}
}

// arc adds an elliptical arc from the current point to end, with the
// radii, rotation and flags read from seg.
func (c *compiler) arc(seg []float64, end Point) {
	c.ensureStart()
	start := c.current
	if start == end {
		return
	}
	rx, ry := math.Abs(seg[0]), math.Abs(seg[1])
	if rx == 0 || ry == 0 {
		c.lineTo(end)
		return
	}
	rotX := seg[2] * math.Pi / 180
	largeArc, sweep := seg[3] != 0, seg[4] != 0
	cx, cy := findEllipseCenter(&rx, &ry, rotX, start.X, start.Y, end.X, end.Y, sweep, !largeArc)
	x, y := c.path.addArc([]float64{rx, ry, seg[2], seg[3], seg[4], end.X, end.Y}, cx, cy, start.X, start.Y)
	p := Point{x, y}
	c.set(p, p, p)
}
