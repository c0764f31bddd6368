package part

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
)

// AttributeCommitter renders one attribute from its literal fragments and the
// values of its parts. The attribute is written at most once per commit
// pass, however many of its parts are committed.
type AttributeCommitter struct {
	Element *html.Node
	Name    string
	Strings []string

	parts []*AttributePart
	dirty bool
}

// NewAttributeCommitter creates a committer with one part per placeholder,
// that is len(strings)-1 parts.
func NewAttributeCommitter(element *html.Node, name string, strings []string) *AttributeCommitter {
	c := &AttributeCommitter{
		Element: element,
		Name:    name,
		Strings: strings,
		dirty:   true,
	}
	n := len(strings) - 1
	if n < 0 {
		n = 0
	}
	c.parts = make([]*AttributePart, n)
	for i := range c.parts {
		c.parts[i] = &AttributePart{committer: c, value: Undefined}
	}
	return c
}

// Parts returns the committer's parts in placeholder order.
func (c *AttributeCommitter) Parts() []Part {
	out := make([]Part, len(c.parts))
	for i, p := range c.parts {
		out[i] = p
	}
	return out
}

// Value renders the attribute value from the current part values.
func (c *AttributeCommitter) Value() string {
	if len(c.Strings) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range c.parts {
		b.WriteString(c.Strings[i])
		b.WriteString(Stringify(p.value))
	}
	b.WriteString(c.Strings[len(c.Strings)-1])
	return b.String()
}

// Commit writes the attribute when any part changed since the last write.
func (c *AttributeCommitter) Commit() error {
	if !c.dirty {
		return nil
	}
	c.dirty = false
	dom.SetAttr(c.Element, c.Name, c.Value())
	return nil
}

// AttributePart is one placeholder of a bound attribute.
type AttributePart struct {
	committer *AttributeCommitter
	value     any
}

var _ Part = (*AttributePart)(nil)

// SetValue records v and marks the attribute dirty when it changed.
func (p *AttributePart) SetValue(v any) {
	if isPrimitive(v) && isPrimitive(p.value) && v == p.value {
		return
	}
	p.value = v
	p.committer.dirty = true
}

// Commit delegates to the owning committer.
func (p *AttributePart) Commit() error {
	return p.committer.Commit()
}

// BooleanAttributePart toggles the presence of an attribute.
type BooleanAttributePart struct {
	Element *html.Node
	Name    string

	pending   any
	value     bool
	committed bool
}

var _ Part = (*BooleanAttributePart)(nil)

// NewBooleanAttributePart binds the attribute name on element.
func NewBooleanAttributePart(element *html.Node, name string) *BooleanAttributePart {
	return &BooleanAttributePart{Element: element, Name: name}
}

// SetValue records v; it is interpreted with Truthy on commit.
func (p *BooleanAttributePart) SetValue(v any) {
	p.pending = v
}

// Commit adds or removes the attribute.
func (p *BooleanAttributePart) Commit() error {
	on := Truthy(p.pending)
	if p.committed && on == p.value {
		return nil
	}
	if on {
		dom.SetAttr(p.Element, p.Name, "")
	} else {
		dom.RemoveAttr(p.Element, p.Name)
	}
	p.value = on
	p.committed = true
	return nil
}
