package svgscene

import (
	"fmt"
	"math"
	"strings"
)

// Group is a <g> or <a> element. Its box (x, y, width, height) is derived
// from the bounds of its children when built, and may then be changed like
// any other geometric property.
type Group struct {
	Base
	children []Drawable

	// forceCascade makes the style of the group override the style
	// of its children.
	forceCascade bool
}

func newGroup(el Element, children []Drawable) *Group {
	g := &Group{Base: newBase(el), children: children}
	g.initBox()
	return g
}

// initBox computes the box enclosing the children, mapped by each
// transform of the group in turn.
func (g *Group) initBox() {
	var left, top, right, bottom float64
	if len(g.children) != 0 {
		left, top = math.Inf(1), math.Inf(1)
		right, bottom = math.Inf(-1), math.Inf(-1)
		for _, child := range g.children {
			left = math.Min(left, child.Left())
			top = math.Min(top, child.Top())
			right = math.Max(right, child.Right())
			bottom = math.Max(bottom, child.Bottom())
		}
		// the corners go through the list in source order
		for _, tr := range g.transforms {
			left, top = tr.Matrix.Transform(left, top)
			right, bottom = tr.Matrix.Transform(right, bottom)
		}
	}
	g.initial.put(X, left)
	g.initial.put(Y, top)
	g.initial.put(Width, right-left)
	g.initial.put(Height, bottom-top)
}

func (g *Group) Left() float64   { return g.X() }
func (g *Group) Top() float64    { return g.Y() }
func (g *Group) Right() float64  { return g.X() + g.Width() }
func (g *Group) Bottom() float64 { return g.Y() + g.Height() }

// Children returns the direct children of the group.
func (g *Group) Children() []Drawable { return g.children }

func (g *Group) Len() int { return len(g.children) }

func (g *Group) Child(i int) Drawable { return g.children[i] }

// SetForceCascade sets whether the style of the group always overrides the
// style of its children, instead of only filling the missing properties.
func (g *Group) SetForceCascade(force bool) { g.forceCascade = force }

// Find returns the first direct child with the given id, or nil.
func (g *Group) Find(id string) Drawable {
	for _, child := range g.children {
		if child.ID() == id {
			return child
		}
	}
	return nil
}

// FindAll returns the direct children having `class` in their class list.
func (g *Group) FindAll(class string) []Drawable {
	var out []Drawable
	for _, child := range g.children {
		if hasClass(child, class) {
			out = append(out, child)
		}
	}
	return out
}

func hasClass(d Drawable, class string) bool {
	for _, c := range strings.Fields(d.Class()) {
		if c == class {
			return true
		}
	}
	return false
}

// SetChildReference sets `proxy` as the reference of the children at
// `indices`, or of every child when no index is given. The proxy itself is
// skipped.
func (g *Group) SetChildReference(proxy Drawable, indices ...int) error {
	if len(indices) == 0 {
		for _, child := range g.children {
			if child == proxy {
				continue
			}
			if err := child.SetReference(proxy); err != nil {
				return err
			}
		}
		return nil
	}
	for _, i := range indices {
		if i < 0 || i >= len(g.children) {
			return fmt.Errorf("%w: %d (%d children)", ErrIndexOutOfRange, i, len(g.children))
		}
		if g.children[i] == proxy {
			continue
		}
		if err := g.children[i].SetReference(proxy); err != nil {
			return err
		}
	}
	return nil
}

// RestoreState restores the group and all its descendants.
func (g *Group) RestoreState() {
	g.Base.RestoreState()
	for _, child := range g.children {
		child.RestoreState()
	}
}

// cascade propagates the style of the group to `child`.
func (g *Group) cascade(child Drawable) {
	cb := child.base()
	cb.inherited = nil
	for _, p := range styleProperties {
		v, ok := g.Style(p.name)
		if !ok || !v.truthy(p.numeric) {
			continue
		}
		if g.forceCascade {
			cb.setStyleValue(p.name, v)
			continue
		}
		if cb.hasOwnStyle(p.name) {
			continue
		}
		if cb.inherited == nil {
			cb.inherited = make(map[string]StyleValue)
		}
		cb.inherited[p.name] = v
	}
}

func (g *Group) Draw(s Surface) {
	if !g.Visible() {
		return
	}
	s.Save()
	g.applyTransform(s)
	for _, child := range g.children {
		g.cascade(child)
		child.Draw(s)
	}
	s.Restore()
}
