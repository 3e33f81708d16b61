// Package svgxml reads SVG documents into a tree of elements, which may
// then be converted into drawables with svgscene.Build.
package svgxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/svgscene/internal/logging"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"golang.org/x/net/html/charset"
)

var errNoRoot = errors.New("invalid svg document: no root element")

// Bounds defines a rectangle, such as a viewBox.
type Bounds struct{ X, Y, W, H float64 }

// Document is a parsed SVG file.
type Document struct {
	Root *Element

	// ViewBox is the viewBox attribute of the root, or the zero value.
	ViewBox Bounds
	// Width and Height are the size of the root element, resolved to
	// pixels. They are 0 when missing.
	Width, Height float64

	Titles       []string // <title> texts, in document order
	Descriptions []string // <desc> texts, in document order
}

// Viewport returns the size used to resolve percentages: the viewBox if
// defined, otherwise the document size.
func (d *Document) Viewport() (w, h float64) {
	w, h = d.ViewBox.W, d.ViewBox.H
	if w == 0 {
		w = d.Width
	}
	if h == 0 {
		h = d.Height
	}
	return w, h
}

// Build converts the document into a tree of drawables.
func (d *Document) Build(mode svgscene.ErrorMode) (*svgscene.Tree, error) {
	return svgscene.Build(d.Root, mode)
}

// Parse reads an SVG document from `stream`. Encodings other than UTF-8
// are supported through the XML declaration.
func Parse(stream io.Reader) (*Document, error) {
	doc := new(Document)
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		stack []*Element
		text  *string // target of the character data, if any
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := newElement(doc, se)
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("invalid svg document: unexpected element <%s> after the root", el.name)
				}
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)

			text = nil
			switch el.name {
			case "title":
				doc.Titles = append(doc.Titles, "")
				text = &doc.Titles[len(doc.Titles)-1]
			case "desc":
				doc.Descriptions = append(doc.Descriptions, "")
				text = &doc.Descriptions[len(doc.Descriptions)-1]
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			text = nil
		case xml.CharData:
			if text != nil {
				*text += string(se)
			}
		}
	}
	if doc.Root == nil {
		return nil, errNoRoot
	}
	if err := doc.readRoot(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseFile reads the SVG document stored in `filename`.
func ParseFile(filename string) (*Document, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Parse(fin)
}

func (d *Document) readRoot() error {
	if v, ok := d.Root.attrs["viewBox"]; ok {
		nums := svgpath.ParseNumbers(v)
		if len(nums) != 4 {
			return fmt.Errorf("invalid viewBox %q: %w", v, svgpath.ErrParamMismatch)
		}
		d.ViewBox = Bounds{nums[0], nums[1], nums[2], nums[3]}
	}
	for _, dim := range [2]struct {
		name string
		dst  *float64
	}{{"width", &d.Width}, {"height", &d.Height}} {
		v, ok := d.Root.attrs[dim.name]
		if !ok {
			continue
		}
		l, err := parseLength(v)
		if err != nil {
			return err
		}
		if l.unit != "%" {
			*dim.dst = l.pixels()
		}
	}
	return nil
}

// Element is an SVG element. It implements svgscene.Element.
type Element struct {
	doc      *Document
	name     string
	attrs    map[string]string
	children []*Element
}

var _ svgscene.Element = (*Element)(nil)

func newElement(doc *Document, se xml.StartElement) *Element {
	el := &Element{doc: doc, name: se.Name.Local, attrs: make(map[string]string, len(se.Attr))}
	for _, attr := range se.Attr {
		el.attrs[attr.Name.Local] = attr.Value
	}
	return el
}

func (e *Element) Tag() string { return e.name }

func (e *Element) Children() []svgscene.Element {
	out := make([]svgscene.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Points returns the "points" attribute.
func (e *Element) Points() []svgpath.Point {
	return svgpath.ParsePointList(e.attrs["points"])
}

// Transforms returns the "transform" attribute. An invalid entry stops
// the list.
func (e *Element) Transforms() []svgpath.Transform {
	v, ok := e.attrs["transform"]
	if !ok {
		return nil
	}
	l, err := svgpath.ParseTransforms(v)
	if err != nil {
		logging.Logger().Warn("invalid transform", "tag", e.name, "value", v, "error", err)
	}
	return l
}

// String returns a short description of the element.
func (e *Element) String() string {
	var b strings.Builder
	b.WriteString("<" + e.name)
	if id, ok := e.attrs["id"]; ok {
		fmt.Fprintf(&b, " id=%q", id)
	}
	b.WriteString(">")
	return b.String()
}
