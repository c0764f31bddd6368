package template

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
	"github.com/goliatone/go-fragment/pkg/part"
	"github.com/goliatone/go-fragment/pkg/processor"
	"github.com/goliatone/go-fragment/pkg/values"
)

// ErrAnchorNotFound reports a clone whose shape no longer matches the
// template's descriptors.
var ErrAnchorNotFound = errors.New("template: anchor not found")

// Instance is one live clone of a template. Parts are created the first time
// the clone is materialized and reused by every later Update. An Instance is
// not safe for concurrent use.
type Instance struct {
	template  *Template
	processor processor.Processor
	fragment  *html.Node
	parts     []part.Part
}

// NewInstance prepares an instance of t bound through p. A nil p falls back
// to the template's processor.
func NewInstance(t *Template, p processor.Processor) *Instance {
	if p == nil {
		p = t.processor
	}
	return &Instance{template: t, processor: p}
}

// Template returns the compiled template the instance was cloned from.
func (i *Instance) Template() *Template {
	return i.template
}

// Clone materializes the instance: it copies the template fragment, finds
// the anchor of every bindable descriptor and creates its part. It runs once;
// later calls return the same fragment.
func (i *Instance) Clone() (*html.Node, error) {
	if i.fragment != nil {
		return i.fragment, nil
	}
	fragment := i.template.Clone()
	parts, err := i.bind(fragment)
	if err != nil {
		return nil, err
	}
	i.fragment = fragment
	i.parts = parts
	return fragment, nil
}

// bind replays the parser's numbering walk over fragment and pairs each
// descriptor with the node at its index.
func (i *Instance) bind(fragment *html.Node) ([]part.Part, error) {
	descs := i.template.parts
	parts := make([]part.Part, len(descs))
	cursor := dom.NewCursor(fragment)
	index := -1
	var node *html.Node

	for k := 0; k < len(descs); {
		d := descs[k]
		if d.Inert() {
			k++
			continue
		}
		for index < d.Index {
			node = cursor.Next()
			if node == nil {
				return nil, fmt.Errorf("%w: index %d", ErrAnchorNotFound, d.Index)
			}
			index++
		}
		if index != d.Index {
			return nil, fmt.Errorf("%w: index %d out of order", ErrAnchorNotFound, d.Index)
		}

		switch d.Kind {
		case part.KindAttribute, part.KindText:
			end := k + 1
			for end < len(descs) && descs[end].SameSlot(d) {
				end++
			}
			var group []part.Part
			if d.Kind == part.KindText {
				group = i.processor.TextParts(node, d.Strings)
			} else {
				group = i.processor.AttributeParts(node, d.Name, d.Strings)
			}
			if len(group) != end-k {
				return nil, fmt.Errorf("template: processor %q returned %d parts for %s %q, want %d",
					i.processor.Name(), len(group), d.Kind, d.Name, end-k)
			}
			copy(parts[k:end], group)
			k = end
		case part.KindNode:
			parts[k] = i.processor.NodePart(node.PrevSibling, node)
			k++
		default:
			return nil, fmt.Errorf("template: unknown part kind %q", d.Kind)
		}
	}

	i.template.logger.Debug("template: instance bound",
		slog.Int("parts", len(parts)),
		slog.String("processor", i.processor.Name()),
	)
	return parts, nil
}

// Update sets every keyed part to its value in vals, then commits all parts
// in descriptor order. The first commit error aborts the pass.
func (i *Instance) Update(vals values.Values) error {
	if _, err := i.Clone(); err != nil {
		return err
	}
	if vals == nil {
		vals = values.Empty
	}

	descs := i.template.parts
	for k, p := range i.parts {
		if p == nil || descs[k].Expr == "" {
			continue
		}
		v, ok := vals.Lookup(descs[k].Expr)
		if !ok {
			v = part.Undefined
		}
		p.SetValue(v)
	}

	for k, p := range i.parts {
		if p == nil {
			continue
		}
		if err := p.Commit(); err != nil {
			return fmt.Errorf("template: commit part %d: %w", k, err)
		}
	}
	return nil
}

// Fragment returns the instance's fragment root, materializing it if needed.
// It returns nil if materialization fails.
func (i *Instance) Fragment() *html.Node {
	fragment, err := i.Clone()
	if err != nil {
		return nil
	}
	return fragment
}

// Parts returns the bound parts, parallel to the template's descriptors. Inert
// descriptors have a nil entry.
func (i *Instance) Parts() []part.Part {
	out := make([]part.Part, len(i.parts))
	copy(out, i.parts)
	return out
}

// Render writes the instance's current fragment.
func (i *Instance) Render(w io.Writer) error {
	fragment, err := i.Clone()
	if err != nil {
		return err
	}
	return dom.Render(w, fragment)
}
