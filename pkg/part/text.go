package part

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
)

// TextCommitter renders the text of an element that can only hold text, such
// as <title> or <textarea>, from its literal fragments and the values of its
// parts. Anchors cannot live in such elements, so the whole text node is
// rewritten.
type TextCommitter struct {
	Node    *html.Node
	Strings []string

	parts []*TextPart
	dirty bool
}

// NewTextCommitter creates a committer for the text node with one part per
// placeholder, that is len(strings)-1 parts.
func NewTextCommitter(node *html.Node, strings []string) *TextCommitter {
	c := &TextCommitter{
		Node:    node,
		Strings: strings,
		dirty:   true,
	}
	c.parts = make([]*TextPart, max(len(strings)-1, 0))
	for i := range c.parts {
		c.parts[i] = &TextPart{committer: c, value: Undefined}
	}
	return c
}

// Parts returns the committer's parts in placeholder order.
func (c *TextCommitter) Parts() []Part {
	out := make([]Part, len(c.parts))
	for i, p := range c.parts {
		out[i] = p
	}
	return out
}

// Value renders the text from the current part values.
func (c *TextCommitter) Value() string {
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

// Commit rewrites the text node when any part changed since the last write.
func (c *TextCommitter) Commit() error {
	if !c.dirty {
		return nil
	}
	c.dirty = false
	text := c.Value()
	if dom.IsRawText(c.Node.Parent) {
		// Raw text is rendered verbatim; a closing tag would end the element.
		text = strings.ReplaceAll(text, "</", `<\/`)
	}
	c.Node.Data = text
	return nil
}

// TextPart is one placeholder of a text-only element.
type TextPart struct {
	committer *TextCommitter
	value     any
}

var _ Part = (*TextPart)(nil)

// SetValue records v and marks the text dirty when it changed.
func (p *TextPart) SetValue(v any) {
	if isPrimitive(v) && isPrimitive(p.value) && v == p.value {
		return
	}
	p.value = v
	p.committer.dirty = true
}

// Commit delegates to the owning committer.
func (p *TextPart) Commit() error {
	return p.committer.Commit()
}
