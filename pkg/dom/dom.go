// Package dom holds the small set of golang.org/x/net/html helpers the
// template pipeline needs: fragment parsing, deep cloning, anchors and
// rendering.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewFragment returns an empty fragment root.
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// ParseFragment parses markup in a <body> context and returns a fragment
// root holding the resulting top-level nodes.
func ParseFragment(r io.Reader) (*html.Node, error) {
	nodes, err := html.ParseFragment(r, &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	root := NewFragment()
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// ParseString is ParseFragment for an in-memory string.
func ParseString(markup string) (*html.Node, error) {
	return ParseFragment(strings.NewReader(markup))
}

// ParseChildren parses markup as the children of parent, falling back to a
// <body> context when parent is not an element.
func ParseChildren(markup string, parent *html.Node) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	if parent != nil && parent.Type == html.ElementNode {
		// html.ParseFragment rejects a context whose DataAtom disagrees with Data.
		context = &html.Node{
			Type:      html.ElementNode,
			Data:      parent.Data,
			DataAtom:  atom.Lookup([]byte(parent.Data)),
			Namespace: parent.Namespace,
		}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse children: %w", err)
	}
	return nodes, nil
}

// NewAnchor returns an empty comment used as an addressable boundary.
func NewAnchor() *html.Node {
	return &html.Node{Type: html.CommentNode}
}

// NewText returns a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// IsTemplate reports whether n is a <template> element.
func IsTemplate(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Template
}

// IsTextOnly reports whether n is an HTML element whose content is parsed
// and serialized as text, such as <title>, <textarea> or <script>. Comments
// inserted into such an element render as literal text.
func IsTextOnly(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.Namespace != "" {
		return false
	}
	return n.DataAtom == atom.Title || n.DataAtom == atom.Textarea || IsRawText(n)
}

// IsRawText reports whether n is an element whose text is rendered without
// escaping.
func IsRawText(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.Namespace != "" {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Xmp, atom.Iframe,
		atom.Noembed, atom.Noframes, atom.Noscript, atom.Plaintext:
		return true
	}
	return false
}

// Clone returns a deep copy of n sharing no nodes or attribute slices with it.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		out.Attr = make([]html.Attribute, len(n.Attr))
		copy(out.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(Clone(c))
	}
	return out
}

// Children returns the direct children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Attr returns the value of the attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the attribute key on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr drops every attribute named key from n.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// TextContent concatenates the text nodes below n in document order.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Render writes n as HTML. Fragment roots render their children only.
func Render(w io.Writer, n *html.Node) error {
	if n == nil {
		return nil
	}
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(w, c); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, n)
}

// RenderString renders n into a string.
func RenderString(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
