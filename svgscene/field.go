package svgscene

// Field identifies a geometric property.
type Field uint8

const (
	X Field = iota
	Y
	Width
	Height
	CX
	CY
	R
	RX
	RY
	X1
	Y1
	X2
	Y2
	nbFields
)

var fieldNames = [nbFields]string{
	X:      "x",
	Y:      "y",
	Width:  "width",
	Height: "height",
	CX:     "cx",
	CY:     "cy",
	R:      "r",
	RX:     "rx",
	RY:     "ry",
	X1:     "x1",
	Y1:     "y1",
	X2:     "x2",
	Y2:     "y2",
}

// String returns the attribute name of the field.
func (f Field) String() string {
	if f < nbFields {
		return fieldNames[f]
	}
	return "<unknown Field>"
}

// fieldSet stores one optional value per field.
type fieldSet struct {
	values [nbFields]float64
	set    [nbFields]bool
}

func (fs *fieldSet) get(f Field) (float64, bool) {
	if f >= nbFields || !fs.set[f] {
		return 0, false
	}
	return fs.values[f], true
}

func (fs *fieldSet) put(f Field, v float64) {
	fs.values[f] = v
	fs.set[f] = true
}
