package svgscene

import (
	"fmt"

	"github.com/benoitkugler/svgscene/internal/logging"
)

// ErrorMode is the strategy used for unsupported elements.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unsupported elements.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements and logs them.
	WarnErrorMode
	// StrictErrorMode fails on the first unsupported element.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// Tree owns every node built from a source. References between nodes
// are indices in its node table.
type Tree struct {
	nodes []Drawable // in document order
	roots []Drawable
}

// Roots returns the top-level drawables, in document order.
func (t *Tree) Roots() []Drawable { return t.roots }

// Root returns the top-level drawable if there is exactly one, or nil.
func (t *Tree) Root() Drawable {
	if len(t.roots) != 1 {
		return nil
	}
	return t.roots[0]
}

// Len returns the number of nodes of the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Find returns the first node, at any depth, with the given id, or nil.
func (t *Tree) Find(id string) Drawable {
	for _, n := range t.nodes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// FindAll returns the nodes, at any depth, having `class` in their class list.
func (t *Tree) FindAll(class string) []Drawable {
	var out []Drawable
	for _, n := range t.nodes {
		if hasClass(n, class) {
			out = append(out, n)
		}
	}
	return out
}

// Draw draws every root on `s`.
func (t *Tree) Draw(s Surface) {
	for _, r := range t.roots {
		r.Draw(s)
	}
}

// RestoreState restores every node of the tree.
func (t *Tree) RestoreState() {
	for _, r := range t.roots {
		r.RestoreState()
	}
}

// elements without rendering, accepted in every mode
var metadataTags = map[string]bool{
	"title":    true,
	"desc":     true,
	"metadata": true,
}

type builder struct {
	tree *Tree
	mode ErrorMode
}

// Build converts the children of `root` into a tree of drawables.
// Groups are wired as the reference of their children.
func Build(root Element, mode ErrorMode) (*Tree, error) {
	b := builder{tree: new(Tree), mode: mode}
	roots, err := b.buildChildren(root)
	if err != nil {
		return nil, err
	}
	b.tree.roots = roots
	return b.tree, nil
}

func (b *builder) buildChildren(el Element) ([]Drawable, error) {
	var out []Drawable
	for _, child := range el.Children() {
		d, err := b.build(child)
		if err != nil {
			return nil, err
		}
		if d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

// register reserves a slot in the node table, so that nodes are stored
// in document order even if groups are built after their children.
func (b *builder) register() int {
	b.tree.nodes = append(b.tree.nodes, nil)
	return len(b.tree.nodes) - 1
}

func (b *builder) set(index int, d Drawable) {
	base := d.base()
	base.tree, base.index = b.tree, index
	b.tree.nodes[index] = d
}

// build returns nil for skipped elements.
func (b *builder) build(el Element) (Drawable, error) {
	tag := el.Tag()
	var d Drawable
	switch tag {
	case "g", "a":
		index := b.register()
		children, err := b.buildChildren(el)
		if err != nil {
			return nil, err
		}
		g := newGroup(el, children)
		b.set(index, g)
		if err := g.SetChildReference(g); err != nil {
			return nil, err
		}
		return g, nil
	case "rect":
		d = newRect(el)
	case "circle":
		d = newCircle(el)
	case "ellipse":
		d = newEllipse(el)
	case "line":
		d = newLine(el)
	case "polygon":
		d = newPolygon(el)
	case "polyline":
		d = newPolyline(el)
	case "path":
		d = newPath(el)
	default:
		if metadataTags[tag] {
			return nil, nil
		}
		switch b.mode {
		case StrictErrorMode:
			return nil, fmt.Errorf("%w: <%s>", ErrUnsupportedElement, tag)
		case WarnErrorMode:
			logging.Logger().Warn("skipping unsupported element", "tag", tag)
		}
		return nil, nil
	}
	b.set(b.register(), d)
	return d, nil
}
