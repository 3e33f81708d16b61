package svgpath

import (
	"github.com/benoitkugler/svgscene/internal/logging"
)

// curveArgs gives, for each curve command, the number of arguments of one
// segment and the offset of the endpoint x inside it.
var curveArgs = [256]struct{ step, offset int }{
	'a': {7, 5}, 'A': {7, 5},
	'c': {6, 4}, 'C': {6, 4},
	's': {4, 2}, 'S': {4, 2},
	'q': {4, 2}, 'Q': {4, 2},
	't': {2, 0}, 'T': {2, 0},
}

// ParsePoints returns the absolute endpoint of every segment of the path
// data d, in order. Control points are not reported: curves only
// contribute their endpoints.
//
// Malformed input never fails: unknown command letters and text which is
// not a number are skipped, and incomplete argument groups are dropped.
func ParsePoints(d string) []Point {
	sc := pointScanner{d: d}
	sc.scan()
	return sc.points
}

type pointScanner struct {
	d      string
	pos    int
	points []Point

	current, start Point
	// seenCommand is false until the first command has been processed,
	// so that a leading 'm' is read as absolute
	seenCommand bool
}

func (sc *pointScanner) scan() {
	log := logging.Logger()
	for iter := 0; sc.pos < len(sc.d); iter++ {
		if iter > len(sc.d) {
			log.Warn("path scan aborted", "data", sc.d, "position", sc.pos)
			return
		}
		c := sc.d[sc.pos]
		switch {
		case isCommand(c):
			sc.command(c)
			sc.seenCommand = true
		case isLetter(c):
			log.Warn("unknown path command", "command", string(c), "position", sc.pos)
			sc.pos = skipArgs(sc.d, sc.pos)
		default:
			sc.pos++
		}
	}
}

func (sc *pointScanner) emit(p Point) {
	sc.current = p
	sc.points = append(sc.points, p)
}

// pairs emits the point found at from, from+step, ...
func (sc *pointScanner) pairs(a []float64, from, step int, relative bool) {
	for i := from; i+1 < len(a); i += step {
		if relative {
			sc.emit(sc.current.Add(Point{a[i], a[i+1]}))
		} else {
			sc.emit(Point{a[i], a[i+1]})
		}
	}
}

func (sc *pointScanner) command(c byte) {
	relative := 'a' <= c && c <= 'z'
	switch c {
	case 'z', 'Z':
		sc.emit(sc.start)
		sc.pos++
		return
	}

	a, next := args(sc.d, sc.pos)
	sc.pos = next

	switch c {
	case 'm', 'M':
		if len(a) < 2 {
			return
		}
		if relative && sc.seenCommand {
			sc.start = sc.current.Add(Point{a[0], a[1]})
		} else {
			sc.start = Point{a[0], a[1]}
		}
		sc.emit(sc.start)
		sc.pairs(a, 2, 2, relative)
	case 'l', 'L':
		sc.pairs(a, 0, 2, relative)
	case 'h', 'H':
		if len(a) == 0 {
			return
		}
		p := sc.current
		if relative {
			p.X += a[0]
		} else {
			p.X = a[0]
		}
		sc.emit(p)
	case 'v', 'V':
		if len(a) == 0 {
			return
		}
		p := sc.current
		if relative {
			p.Y += a[0]
		} else {
			p.Y = a[0]
		}
		sc.emit(p)
	default:
		ca := curveArgs[c]
		sc.pairs(a, ca.offset, ca.step, relative)
	}
}
