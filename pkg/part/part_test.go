package part_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
	"github.com/goliatone/go-fragment/pkg/part"
)

func region(t *testing.T) (*html.Node, *part.NodePart) {
	t.Helper()
	parent := &html.Node{Type: html.ElementNode, Data: "div"}
	start, end := dom.NewAnchor(), dom.NewAnchor()
	parent.AppendChild(start)
	parent.AppendChild(end)
	return parent, part.NewNodePart(start, end)
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	out, err := dom.RenderString(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

type nodesFunc func() ([]*html.Node, error)

func (f nodesFunc) Nodes() ([]*html.Node, error) { return f() }

func TestNodePart_ReplacesRegion(t *testing.T) {
	parent, p := region(t)

	steps := []struct {
		value any
		want  string
	}{
		{"hello", `<div><!---->hello<!----></div>`},
		{"a < b", `<div><!---->a &lt; b<!----></div>`},
		{part.HTML(`<b>x</b><i>y</i>`), `<div><!----><b>x</b><i>y</i><!----></div>`},
		{[]any{"a", 1, true}, `<div><!---->a1true<!----></div>`},
		{part.Undefined, `<div><!----><!----></div>`},
		{42, `<div><!---->42<!----></div>`},
		{nil, `<div><!----><!----></div>`},
	}
	for i, step := range steps {
		p.SetValue(step.value)
		if err := p.Commit(); err != nil {
			t.Fatalf("step %d commit: %v", i, err)
		}
		if got := render(t, parent); got != step.want {
			t.Fatalf("step %d render = %s, want %s", i, got, step.want)
		}
	}
}

func TestNodePart_StringUpdatesTextInPlace(t *testing.T) {
	parent, p := region(t)

	p.SetValue("one")
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	text := p.Start.NextSibling

	p.SetValue("two")
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if p.Start.NextSibling != text {
		t.Fatalf("text node was replaced instead of updated")
	}
	if got := render(t, parent); got != `<div><!---->two<!----></div>` {
		t.Fatalf("render = %s", got)
	}
	if p.Value() != "two" {
		t.Fatalf("Value = %v", p.Value())
	}
}

func TestNodePart_NodeValuesAreCloned(t *testing.T) {
	parent, p := region(t)
	frag, err := dom.ParseString(`<em>a</em><em>b</em>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	p.SetValue(frag)
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := render(t, parent); got != `<div><!----><em>a</em><em>b</em><!----></div>` {
		t.Fatalf("render = %s", got)
	}
	if got := render(t, frag); got != `<em>a</em><em>b</em>` {
		t.Fatalf("source fragment mutated: %s", got)
	}
}

func TestNodePart_NestedNodes(t *testing.T) {
	parent, p := region(t)

	p.SetValue(nodesFunc(func() ([]*html.Node, error) {
		return []*html.Node{dom.NewText("x"), dom.NewAnchor()}, nil
	}))
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := render(t, parent); got != `<div><!---->x<!----><!----></div>` {
		t.Fatalf("render = %s", got)
	}

	boom := errors.New("boom")
	p.SetValue(nodesFunc(func() ([]*html.Node, error) { return nil, boom }))
	if err := p.Commit(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestNodePart_HTMLFilter(t *testing.T) {
	parent := &html.Node{Type: html.ElementNode, Data: "div"}
	end := dom.NewAnchor()
	parent.AppendChild(end)
	p := part.NewNodePart(nil, end, part.WithHTMLFilter(strings.ToUpper))

	p.SetValue(part.HTML(`<b>x</b>`))
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := render(t, parent); got != `<div><b>X</b><!----></div>` {
		t.Fatalf("render = %s", got)
	}
}

func TestNodePart_DetachedEnd(t *testing.T) {
	p := part.NewNodePart(nil, dom.NewAnchor())
	p.SetValue("x")
	if err := p.Commit(); err == nil {
		t.Fatalf("expected error for detached end anchor")
	}
}

func TestNodePart_Clear(t *testing.T) {
	parent, p := region(t)
	p.SetValue(part.HTML(`<b>x</b>`))
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	p.Clear()
	if got := render(t, parent); got != `<div><!----><!----></div>` {
		t.Fatalf("render = %s", got)
	}
	if p.Value() != nil {
		t.Fatalf("Value after Clear = %v", p.Value())
	}
}

func TestAttributeCommitter_MultipleParts(t *testing.T) {
	el := &html.Node{Type: html.ElementNode, Data: "a"}
	c := part.NewAttributeCommitter(el, "class", []string{"x ", " y ", ""})

	parts := c.Parts()
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	parts[0].SetValue("a")
	for _, p := range parts {
		if err := p.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	if v, _ := dom.Attr(el, "class"); v != "x a y " {
		t.Fatalf("class = %q", v)
	}

	parts[1].SetValue(7)
	if err := parts[1].Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if diff := cmp.Diff([]html.Attribute{{Key: "class", Val: "x a y 7"}}, el.Attr); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeCommitter_SkipsCleanCommits(t *testing.T) {
	el := &html.Node{Type: html.ElementNode, Data: "p"}
	c := part.NewAttributeCommitter(el, "title", []string{"", ""})
	p := c.Parts()[0]

	p.SetValue("t")
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	el.Attr[0].Val = "changed elsewhere"

	p.SetValue("t")
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if v, _ := dom.Attr(el, "title"); v != "changed elsewhere" {
		t.Fatalf("unchanged value rewrote the attribute: %q", v)
	}
}

func TestBooleanAttributePart(t *testing.T) {
	el := &html.Node{Type: html.ElementNode, Data: "input"}
	p := part.NewBooleanAttributePart(el, "disabled")

	for _, tc := range []struct {
		value any
		want  bool
	}{
		{true, true},
		{"false", false},
		{"yes", true},
		{0, false},
		{part.Undefined, false},
	} {
		p.SetValue(tc.value)
		if err := p.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
		if _, ok := dom.Attr(el, "disabled"); ok != tc.want {
			t.Fatalf("value %v: attribute present = %v, want %v", tc.value, ok, tc.want)
		}
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{part.Undefined, ""},
		{"s", "s"},
		{part.HTML("<b>"), "<b>"},
		{3, "3"},
		{int64(-4), "-4"},
		{1.5, "1.5"},
		{false, "false"},
		{errors.New("e"), "e"},
		{[]int{1, 2}, "[1 2]"},
	}
	for _, tc := range cases {
		if got := part.Stringify(tc.in); got != tc.want {
			t.Errorf("Stringify(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDescriptorHelpers(t *testing.T) {
	a := part.Descriptor{Kind: part.KindAttribute, Index: 2, Name: "class", Strings: []string{"", " ", ""}, Expr: "a"}
	b := a
	b.Expr = "b"
	if !a.SameSlot(b) {
		t.Fatalf("expected descriptors to share the attribute")
	}
	b.Name = "title"
	if a.SameSlot(b) {
		t.Fatalf("different names must not share the attribute")
	}

	text := part.Descriptor{Kind: part.KindText, Index: 4, Strings: []string{"", " ", ""}, Expr: "x"}
	other := text
	other.Expr = "y"
	if !text.SameSlot(other) {
		t.Fatalf("expected text descriptors to share the node")
	}
	node := part.Descriptor{Kind: part.KindNode, Index: 4, Expr: "x"}
	if node.SameSlot(node) || text.SameSlot(node) {
		t.Fatalf("node descriptors are never grouped")
	}

	src := []part.Descriptor{a}
	cloned := part.Clone(src)
	cloned[0].Expr = "changed"
	if src[0].Expr != "a" {
		t.Fatalf("Clone shares the backing array with the source")
	}
	if part.Clone(nil) != nil {
		t.Fatalf("Clone(nil) must stay nil")
	}
}

func TestTextCommitter_RewritesTextNode(t *testing.T) {
	root, err := dom.ParseString(`<title>x</title>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := root.FirstChild.FirstChild
	c := part.NewTextCommitter(text, []string{"Hello ", " & ", ""})

	parts := c.Parts()
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	parts[0].SetValue("<world>")
	for _, p := range parts {
		if err := p.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	if got := render(t, root); got != `<title>Hello &lt;world&gt; &amp; </title>` {
		t.Fatalf("render = %s", got)
	}
}

func TestTextCommitter_RawTextCannotCloseElement(t *testing.T) {
	root, err := dom.ParseString(`<script>x</script>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := part.NewTextCommitter(root.FirstChild.FirstChild, []string{"var s = '", "';"}).Parts()[0]

	p.SetValue(`</script><b>`)
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := render(t, root); got != `<script>var s = '<\/script><b>';</script>` {
		t.Fatalf("render = %s", got)
	}
}

type counter struct{ n int }

type mountValue struct {
	text  string
	reuse bool
	mount *int
}

func (v mountValue) Nodes() ([]*html.Node, error) {
	_, nodes, err := v.Mount()
	return nodes, err
}

func (v mountValue) Mount() (any, []*html.Node, error) {
	*v.mount++
	return &counter{}, []*html.Node{dom.NewText(v.text)}, nil
}

func (v mountValue) Remount(instance any) (bool, error) {
	c, ok := instance.(*counter)
	if !ok || !v.reuse {
		return false, nil
	}
	c.n++
	return true, nil
}

func TestNodePart_MountableValuesReuseInstance(t *testing.T) {
	parent, p := region(t)
	mounts := 0

	p.SetValue(mountValue{text: "a", reuse: true, mount: &mounts})
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	p.SetValue(mountValue{text: "b", reuse: true, mount: &mounts})
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if mounts != 1 {
		t.Fatalf("mounts = %d, want 1", mounts)
	}
	if got := render(t, parent); got != `<div><!---->a<!----></div>` {
		t.Fatalf("reused render = %s", got)
	}

	p.SetValue(mountValue{text: "c", mount: &mounts})
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if mounts != 2 {
		t.Fatalf("mounts = %d, want 2", mounts)
	}
	if got := render(t, parent); got != `<div><!---->c<!----></div>` {
		t.Fatalf("remounted render = %s", got)
	}

	p.SetValue("plain")
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	p.SetValue(mountValue{text: "d", reuse: true, mount: &mounts})
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if mounts != 3 {
		t.Fatalf("a plain value must drop the mounted instance, mounts = %d", mounts)
	}
	if got := render(t, parent); got != `<div><!---->d<!----></div>` {
		t.Fatalf("render = %s", got)
	}
}
