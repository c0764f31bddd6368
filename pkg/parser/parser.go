package parser

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
	"github.com/goliatone/go-fragment/pkg/marker"
	"github.com/goliatone/go-fragment/pkg/part"
)

// Option configures a parse.
type Option func(*config)

type config struct {
	strings []string
	logger  *slog.Logger
}

// WithStrings supplies the tagged-literal fragments the markup was joined
// from. Bound attribute names are then derived from the fragment preceding
// each attribute's first placeholder.
func WithStrings(fragments []string) Option {
	return func(cfg *config) {
		cfg.strings = fragments
	}
}

// WithLogger traces emitted descriptors at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

type parser struct {
	cfg config

	parts  []part.Descriptor
	remove []*html.Node

	// index is the position of the current node in the final, mutated tree.
	index int
	// partIndex counts placeholders seen so far, aligned with cfg.strings.
	partIndex int
	// lastPartIndex is the index claimed by the last comment part. Two node
	// parts must never share an index.
	lastPartIndex int
}

// Parse walks the fragment below root, mutating it in place, and returns the
// descriptors in discovery order. It never fails: markers that cannot be
// bound become inert descriptors.
func Parse(root *html.Node, options ...Option) []part.Descriptor {
	p := &parser{index: -1, lastPartIndex: -1}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&p.cfg)
	}
	if root == nil {
		return nil
	}

	cursor := dom.NewCursor(root)
	for node := cursor.Next(); node != nil; node = cursor.Next() {
		p.index++
		switch node.Type {
		case html.ElementNode:
			p.element(node)
		case html.TextNode:
			p.text(node)
		case html.CommentNode:
			p.comment(node)
		}
	}

	// Removing during the walk would pull nodes out from under the cursor.
	for _, n := range p.remove {
		dom.Detach(n)
	}

	if p.cfg.logger != nil {
		p.cfg.logger.Debug("parser: template parsed",
			slog.Int("parts", len(p.parts)),
			slog.Int("nodes", p.index+1),
		)
	}
	return p.parts
}

func (p *parser) emit(d part.Descriptor) {
	p.parts = append(p.parts, d)
	if p.cfg.logger != nil {
		p.cfg.logger.Debug("parser: part",
			slog.String("kind", string(d.Kind)),
			slog.Int("index", d.Index),
			slog.String("name", d.Name),
			slog.String("expr", d.Expr),
		)
	}
}

func (p *parser) element(node *html.Node) {
	if len(node.Attr) == 0 {
		return
	}
	attrs := make([]html.Attribute, len(node.Attr))
	copy(attrs, node.Attr)
	var bound map[string]struct{}
	for _, attr := range attrs {
		if !marker.Contains(attr.Val) {
			continue
		}
		literals, keys := marker.Split(attr.Val)
		name, ok := p.attributeName(attr.Key)
		if ok {
			// Two attributes resolving to one name would share a part group.
			if _, dup := bound[strings.ToLower(name)]; dup {
				dom.RemoveAttr(node, attr.Key)
				ok = false
			}
		}
		if !ok {
			for range keys {
				p.emit(part.Descriptor{Kind: part.KindAttribute, Index: part.InertIndex})
			}
			p.partIndex += len(keys)
			continue
		}
		if bound == nil {
			bound = make(map[string]struct{})
		}
		bound[strings.ToLower(name)] = struct{}{}
		for _, key := range keys {
			p.emit(part.Descriptor{
				Kind:    part.KindAttribute,
				Index:   p.index,
				Name:    name,
				Strings: literals,
				Expr:    key,
			})
		}
		dom.RemoveAttr(node, attr.Key)
		p.partIndex += len(keys)
	}
}

// attributeName resolves the bound name of the attribute stored under key.
func (p *parser) attributeName(key string) (string, bool) {
	name := marker.TrimSuffix(key)
	if p.cfg.strings == nil {
		return name, name != ""
	}
	if p.partIndex >= len(p.cfg.strings) {
		return "", false
	}
	declared, ok := marker.AttributeName(p.cfg.strings[p.partIndex])
	if !ok || !strings.EqualFold(declared, name) {
		return "", false
	}
	return declared, true
}

func (p *parser) text(node *html.Node) {
	data := node.Data
	matches := marker.Pattern.FindAllStringSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return
	}
	parent := node.Parent
	if dom.IsTextOnly(parent) {
		p.textOnly(node)
		return
	}

	// Every placeholder gets a start node inserted before the text: the
	// preceding literal, or an anchor when that literal is empty. Its region
	// ends at the next inserted node, or at whatever stands in for the text.
	p.index--
	pos := 0
	for _, m := range matches {
		literal := data[pos:m[0]]
		start := dom.NewAnchor()
		if literal != "" {
			start = dom.NewText(literal)
		}
		parent.InsertBefore(start, node)
		p.index++
		p.emit(part.Descriptor{
			Kind:  part.KindNode,
			Index: p.index + 1,
			Expr:  strings.TrimSpace(data[m[2]:m[3]]),
		})
		pos = m[1]
	}

	if trailing := data[pos:]; trailing != "" {
		node.Data = trailing
	} else {
		parent.InsertBefore(dom.NewAnchor(), node)
		p.remove = append(p.remove, node)
	}
	p.index++
	p.partIndex += len(matches)
}

// textOnly binds the text of an element that cannot hold anchors. The text
// node itself is the anchor; its placeholders form one group.
func (p *parser) textOnly(node *html.Node) {
	literals, keys := marker.Split(node.Data)
	for _, key := range keys {
		p.emit(part.Descriptor{
			Kind:    part.KindText,
			Index:   p.index,
			Strings: literals,
			Expr:    key,
		})
	}
	node.Data = strings.Join(literals, "")
	p.partIndex += len(keys)
}

func (p *parser) comment(node *html.Node) {
	key, exact := marker.Exact(node.Data)
	if !exact && !marker.IsSentinel(node.Data) {
		for i := marker.Count(node.Data); i > 0; i-- {
			p.emit(part.Descriptor{Kind: part.KindNode, Index: part.InertIndex})
			p.partIndex++
		}
		return
	}

	parent := node.Parent
	if node.PrevSibling == nil || p.index == p.lastPartIndex {
		parent.InsertBefore(dom.NewAnchor(), node)
		p.index++
	}
	p.lastPartIndex = p.index
	p.emit(part.Descriptor{Kind: part.KindNode, Index: p.index, Expr: key})

	if node.NextSibling == nil {
		node.Data = ""
	} else {
		p.remove = append(p.remove, node)
		p.index--
	}
	p.partIndex++
}
