package svgpath

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

const pathCommands = "achlmqstvzACHLMQSTVZ"

func isCommand(c byte) bool { return strings.IndexByte(pathCommands, c) >= 0 }

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', ',', ';':
		return true
	}
	return false
}

// splitMinus inserts a space before every '-' not following an
// exponent marker, so that "10-5" reads as two numbers and "2e-4" as one.
func splitMinus(s string) string {
	if strings.IndexByte(s, '-') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '-' && i > 0 && s[i-1] != 'e' && s[i-1] != 'E' {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ParseNumbers reads every number of s, separated by whitespace, commas
// or semicolons. Glued numbers such as "0.5.5" or "1-2" are split; text
// without a numeric prefix is dropped.
func ParseNumbers(s string) []float64 {
	var out []float64
	for _, field := range strings.FieldsFunc(splitMinus(s), isSeparator) {
		b := []byte(field)
		for len(b) > 0 {
			f, n := strconv.ParseFloat(b)
			if n == 0 {
				break
			}
			out = append(out, f)
			b = b[n:]
		}
	}
	return out
}

// ParsePointList reads a points attribute ("x1,y1 x2,y2 ...").
// A trailing odd coordinate is ignored.
func ParsePointList(s string) []Point {
	nums := ParseNumbers(s)
	out := make([]Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		out = append(out, Point{nums[i], nums[i+1]})
	}
	return out
}

// args returns the arguments of the command letter at pos and the
// index of the next command letter (len(d) if there is none).
func args(d string, pos int) ([]float64, int) {
	end := pos + 1
	for end < len(d) && !isCommand(d[end]) {
		end++
	}
	return ParseNumbers(d[pos+1 : end]), end
}

// skipArgs returns the index of the next command letter after pos.
func skipArgs(d string, pos int) int {
	end := pos + 1
	for end < len(d) && !isCommand(d[end]) {
		end++
	}
	return end
}
