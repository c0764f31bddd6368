package part

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
)

// NodeOption configures a NodePart.
type NodeOption func(*NodePart)

// WithHTMLFilter runs trusted HTML values through filter before parsing.
func WithHTMLFilter(filter func(string) string) NodeOption {
	return func(p *NodePart) {
		p.filter = filter
	}
}

// NodePart owns the siblings strictly between Start and End. Committing a
// value replaces them.
type NodePart struct {
	Start *html.Node
	End   *html.Node

	filter    func(string) string
	pending   any
	value     any
	committed bool
	mounted   any
}

var _ Part = (*NodePart)(nil)

// NewNodePart binds the region between start and end. A nil start means the
// region begins at the first child of end's parent.
func NewNodePart(start, end *html.Node, opts ...NodeOption) *NodePart {
	p := &NodePart{Start: start, End: end}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// SetValue records the value applied by the next Commit.
func (p *NodePart) SetValue(value any) {
	p.pending = value
}

// Value returns the last committed value.
func (p *NodePart) Value() any {
	return p.value
}

// Commit replaces the region's content with the pending value.
func (p *NodePart) Commit() error {
	if p.End == nil || p.End.Parent == nil {
		return fmt.Errorf("part: node part end anchor is detached")
	}
	value := p.pending
	if p.committed && isPrimitive(value) && isPrimitive(p.value) && value == p.value {
		return nil
	}

	if m, ok := value.(Mountable); ok {
		return p.commitMountable(m)
	}

	if s, ok := value.(string); ok {
		if text := p.soleText(); text != nil {
			text.Data = s
			p.mounted = nil
			p.value = value
			p.committed = true
			return nil
		}
	}

	nodes, err := p.render(value)
	if err != nil {
		return err
	}
	p.replace(nodes)
	p.mounted = nil
	p.value = value
	p.committed = true
	return nil
}

func (p *NodePart) commitMountable(m Mountable) error {
	if p.mounted != nil {
		reused, err := m.Remount(p.mounted)
		if err != nil {
			return fmt.Errorf("part: update nested instance: %w", err)
		}
		if reused {
			p.value = m
			p.committed = true
			return nil
		}
	}
	instance, nodes, err := m.Mount()
	if err != nil {
		return fmt.Errorf("part: expand nested nodes: %w", err)
	}
	p.replace(nodes)
	p.mounted = instance
	p.value = m
	p.committed = true
	return nil
}

func (p *NodePart) replace(nodes []*html.Node) {
	p.clear()
	parent := p.End.Parent
	for _, n := range nodes {
		dom.Detach(n)
		parent.InsertBefore(n, p.End)
	}
}

// Clear removes every node in the region.
func (p *NodePart) Clear() {
	p.clear()
	p.mounted = nil
	p.value = nil
	p.committed = false
}

func (p *NodePart) first() *html.Node {
	if p.Start != nil {
		return p.Start.NextSibling
	}
	return p.End.Parent.FirstChild
}

func (p *NodePart) clear() {
	for n := p.first(); n != nil && n != p.End; {
		next := n.NextSibling
		n.Parent.RemoveChild(n)
		n = next
	}
}

func (p *NodePart) soleText() *html.Node {
	n := p.first()
	if n != nil && n != p.End && n.Type == html.TextNode && n.NextSibling == p.End {
		return n
	}
	return nil
}

func (p *NodePart) render(value any) ([]*html.Node, error) {
	switch v := value.(type) {
	case nil, undefined:
		return nil, nil
	case string:
		return []*html.Node{dom.NewText(v)}, nil
	case HTML:
		markup := string(v)
		if p.filter != nil {
			markup = p.filter(markup)
		}
		return dom.ParseChildren(markup, p.End.Parent)
	case *html.Node:
		if v == nil {
			return nil, nil
		}
		clone := dom.Clone(v)
		if clone.Type == html.DocumentNode {
			return detachAll(clone), nil
		}
		return []*html.Node{clone}, nil
	case []*html.Node:
		out := make([]*html.Node, 0, len(v))
		for _, n := range v {
			out = append(out, dom.Clone(n))
		}
		return out, nil
	case Nodes:
		nodes, err := v.Nodes()
		if err != nil {
			return nil, fmt.Errorf("part: expand nested nodes: %w", err)
		}
		return nodes, nil
	case []any:
		var out []*html.Node
		for _, item := range v {
			nodes, err := p.render(item)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil
	default:
		return []*html.Node{dom.NewText(Stringify(v))}, nil
	}
}

func detachAll(root *html.Node) []*html.Node {
	children := dom.Children(root)
	for _, c := range children {
		root.RemoveChild(c)
	}
	return children
}
