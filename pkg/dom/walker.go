package dom

import "golang.org/x/net/html"

// Walker is a pre-order cursor over the element, text and comment nodes
// below Root. The children of <template> elements other than Root are
// skipped; Cursor enters them explicitly.
type Walker struct {
	Root    *html.Node
	Current *html.Node
}

// NewWalker positions a walker on root.
func NewWalker(root *html.Node) *Walker {
	return &Walker{Root: root, Current: root}
}

// Next advances to the next visible node, or returns nil once the subtree
// below Root is exhausted. Nodes inserted before Current are not visited.
func (w *Walker) Next() *html.Node {
	n := w.Current
	for n != nil {
		n = w.step(n)
		if n == nil {
			return nil
		}
		if visible(n) {
			w.Current = n
			return n
		}
	}
	return nil
}

func (w *Walker) step(n *html.Node) *html.Node {
	if n.FirstChild != nil && (n == w.Root || !IsTemplate(n)) {
		return n.FirstChild
	}
	for n != nil && n != w.Root {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

func visible(n *html.Node) bool {
	switch n.Type {
	case html.ElementNode, html.TextNode, html.CommentNode:
		return true
	}
	return false
}

// Cursor numbers a tree the way the template parser does: document order,
// with the content of each <template> element walked right after the element
// itself. It keeps an explicit stack of suspended walkers, one per enclosing
// template.
type Cursor struct {
	walker *Walker
	stack  []*Walker
	last   *html.Node
}

// NewCursor starts a cursor at root. root itself is never returned.
func NewCursor(root *html.Node) *Cursor {
	return &Cursor{walker: NewWalker(root)}
}

// Next returns the next node, or nil when the whole tree has been visited.
func (c *Cursor) Next() *html.Node {
	if IsTemplate(c.last) {
		c.stack = append(c.stack, c.walker)
		c.walker = NewWalker(c.last)
	}
	for {
		n := c.walker.Next()
		if n != nil {
			c.last = n
			return n
		}
		if len(c.stack) == 0 {
			c.last = nil
			return nil
		}
		// Resume the enclosing walk from the template element itself.
		c.walker = c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		c.last = nil
	}
}

// Depth reports how many template elements enclose the current position.
func (c *Cursor) Depth() int {
	return len(c.stack)
}
