package svgscene

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestGroupBox(t *testing.T) {
	tree := mustBuild(t,
		el("g", "id", "g").with(
			el("rect", "width", "10", "height", "10"),
			el("rect", "x", "5", "y", "5", "width", "15", "height", "15"),
		),
		el("g", "id", "moved", "transform", "translate(10,0) scale(2)").with(
			el("circle", "cx", "5", "cy", "5", "r", "5"),
		),
		el("g", "id", "scaled", "transform", "scale(2) translate(10,0)").with(
			el("circle", "cx", "5", "cy", "5", "r", "5"),
		),
		el("g", "id", "empty"),
	)

	g := tree.Find("g")
	test.Float(t, g.Left(), 0)
	test.Float(t, g.Top(), 0)
	test.Float(t, g.Right(), 20)
	test.Float(t, g.Bottom(), 20)
	w, ok := g.Initial(Width)
	test.That(t, ok)
	test.Float(t, w, 20)

	moved := tree.Find("moved")
	test.Float(t, moved.Left(), 20)
	test.Float(t, moved.Top(), 0)
	test.Float(t, moved.Right(), 40)
	test.Float(t, moved.Bottom(), 20)

	// same transforms, reversed list
	scaled := tree.Find("scaled")
	test.Float(t, scaled.Left(), 10)
	test.Float(t, scaled.Top(), 0)
	test.Float(t, scaled.Right(), 30)
	test.Float(t, scaled.Bottom(), 20)

	empty := tree.Find("empty")
	test.Float(t, empty.Left(), 0)
	test.Float(t, empty.Right(), 0)
	test.T(t, len(draw(empty).calls), 2)

	// the box of a group is editable
	test.Error(t, g.Set(X, 4))
	test.Float(t, g.Left(), 4)
	test.Float(t, g.Right(), 24)
}

func TestGroupReference(t *testing.T) {
	tree := mustBuild(t,
		el("g", "id", "g").with(
			el("rect", "id", "a", "width", "10", "height", "10"),
			el("rect", "id", "b", "x", "10", "y", "10", "width", "10", "height", "10"),
		),
	)
	g := tree.Find("g")
	a, b := tree.Find("a"), tree.Find("b")
	test.T(t, a.Reference(), g)
	test.T(t, b.Reference(), g)
	test.T(t, g.Reference(), nil)

	test.Error(t, g.Set(Width, 40))
	test.Error(t, g.Set(Height, 10))
	r := draw(tree)
	x, y := r.geomMatrix.Transform(20, 20)
	test.Float(t, x, 40, "last drawn child follows the group")
	test.Float(t, y, 10)
}

func TestSetChildReference(t *testing.T) {
	tree := mustBuild(t,
		el("g", "id", "g").with(
			el("rect", "id", "proxy", "width", "10", "height", "10"),
			el("rect", "id", "a"),
			el("rect", "id", "b"),
		),
	)
	g := tree.Find("g").(*Group)
	proxy := tree.Find("proxy")

	test.Error(t, g.SetChildReference(proxy, 1))
	test.T(t, g.Child(1).Reference(), proxy)
	test.T(t, g.Child(2).Reference(), Drawable(g))

	test.Error(t, g.SetChildReference(proxy))
	test.T(t, g.Child(2).Reference(), proxy)
	test.T(t, proxy.Reference(), Drawable(g), "the proxy is skipped")

	err := g.SetChildReference(proxy, 3)
	test.That(t, errors.Is(err, ErrIndexOutOfRange))
	err = g.SetChildReference(proxy, -1)
	test.That(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestGroupFind(t *testing.T) {
	tree := mustBuild(t,
		el("g", "id", "g").with(
			el("rect", "id", "a", "class", "big red"),
			el("rect", "id", "b", "class", "red"),
			el("g", "id", "inner").with(
				el("rect", "id", "c", "class", "red"),
			),
		),
	)
	g := tree.Find("g").(*Group)
	test.T(t, g.Len(), 3)
	test.T(t, g.Find("b"), tree.Find("b"))
	test.T(t, g.Find("c"), nil, "only direct children")
	test.T(t, len(g.FindAll("red")), 2)
	test.T(t, len(g.FindAll("re")), 0)

	test.T(t, tree.Find("c").ID(), "c")
	test.T(t, len(tree.FindAll("red")), 3)
	test.T(t, len(tree.FindAll("big")), 1)
}

func TestCascade(t *testing.T) {
	tree := mustBuild(t,
		el("g", "id", "g", "fill", "red", "stroke-width", "3").with(
			el("rect", "id", "plain", "width", "1", "height", "1"),
			el("rect", "id", "own", "width", "1", "height", "1", "fill", "blue"),
		),
	)
	g := tree.Find("g").(*Group)
	plain, own := tree.Find("plain"), tree.Find("own")

	r := newRecorder()
	g.Draw(r)
	v, _ := plain.Style(StyleFill)
	test.String(t, v.Raw, "red", "inherited")
	v, _ = own.Style(StyleFill)
	test.String(t, v.Raw, "blue", "own value kept")
	v, _ = own.Style(StyleStrokeWidth)
	test.Float(t, v.Number, 3)
	test.String(t, r.String(), "save; "+
		"save; begin; rect 0 0 1 1; fill-paint #ff0000ff; fill; close; restore; "+
		"save; begin; rect 0 0 1 1; fill-paint #0000ffff; fill; close; restore; "+
		"restore")

	// a change of the group is seen on the next draw
	test.Error(t, g.SetStyle(StyleFill, "lime"))
	draw(g)
	v, _ = plain.Style(StyleFill)
	test.String(t, v.Raw, "lime")
	_, ok := plain.InitialStyle(StyleFill)
	test.That(t, !ok, "inherited values are not part of the initial state")

	// falsy values are not propagated
	test.Error(t, g.SetStyle(StyleStrokeWidth, "0"))
	draw(g)
	_, ok = own.Style(StyleStrokeWidth)
	test.That(t, !ok)

	g.RestoreState()
	_, ok = plain.Style(StyleFill)
	test.That(t, !ok)
}

func TestForceCascade(t *testing.T) {
	tree := mustBuild(t,
		el("g", "id", "g", "fill", "red").with(
			el("rect", "id", "own", "fill", "blue"),
		),
	)
	g := tree.Find("g").(*Group)
	own := tree.Find("own")

	g.SetForceCascade(true)
	draw(g)
	v, _ := own.Style(StyleFill)
	test.String(t, v.Raw, "red")
	v, _ = own.InitialStyle(StyleFill)
	test.String(t, v.Raw, "blue")

	g.SetForceCascade(false)
	g.RestoreState()
	draw(g)
	v, _ = own.Style(StyleFill)
	test.String(t, v.Raw, "blue")
}

func TestNestedCascade(t *testing.T) {
	tree := mustBuild(t,
		el("g", "stroke", "navy").with(
			el("g", "fill", "none").with(
				el("rect", "id", "r", "width", "1", "height", "1"),
			),
		),
	)
	r := draw(tree)
	test.String(t, r.String(), "save; save; "+
		"save; begin; rect 0 0 1 1; stroke-paint #000080ff; stroke; close; restore; "+
		"restore; restore")
	v, _ := tree.Find("r").Style(StyleStroke)
	test.String(t, v.Raw, "navy")
}

func TestHiddenGroup(t *testing.T) {
	tree := mustBuild(t,
		el("g", "id", "g", "visibility", "hidden").with(
			el("rect", "width", "1", "height", "1"),
		),
	)
	test.T(t, len(draw(tree).calls), 0)
	tree.Find("g").SetVisible(true)
	test.That(t, len(draw(tree).calls) > 0)
}
