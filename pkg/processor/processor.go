// Package processor decides which Part implementation binds each dynamic
// slot of an instantiated template.
package processor

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/part"
)

// Processor constructs parts for a freshly cloned template. The descriptor
// list of a template never depends on the processor that binds it.
type Processor interface {
	Name() string
	// AttributeParts returns one part per placeholder of the attribute, that
	// is len(strings)-1 parts, in placeholder order.
	AttributeParts(element *html.Node, name string, strings []string) []part.Part
	// NodePart binds the sibling region strictly between start and end.
	NodePart(start, end *html.Node) part.Part
	// TextParts returns one part per placeholder in the text node of an
	// element that can only hold text, in placeholder order.
	TextParts(node *html.Node, strings []string) []part.Part
}

const (
	// DefaultName is the name of the processor returned by Default.
	DefaultName = "default"

	// BooleanPrefix marks an attribute bound as present/absent rather than
	// by value, as in ?disabled="{{off}}".
	BooleanPrefix = "?"
)

// Option configures the built-in processors.
type Option func(*config)

type config struct {
	name       string
	htmlFilter func(string) string
}

// WithName overrides the name a processor registers under.
func WithName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithHTMLFilter filters part.HTML values before node parts parse them.
func WithHTMLFilter(filter func(string) string) Option {
	return func(cfg *config) {
		cfg.htmlFilter = filter
	}
}

// Standard is the stock processor: string-like values become text, part.HTML
// is parsed, attributes prefixed with BooleanPrefix toggle presence.
type Standard struct {
	cfg config
}

var _ Processor = (*Standard)(nil)

// New builds a Standard processor.
func New(options ...Option) *Standard {
	cfg := config{name: DefaultName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Standard{cfg: cfg}
}

var defaultProcessor = New()

// Default returns the shared default processor.
func Default() Processor {
	return defaultProcessor
}

// Name implements Processor.
func (s *Standard) Name() string {
	return s.cfg.name
}

// AttributeParts implements Processor.
func (s *Standard) AttributeParts(element *html.Node, name string, strings []string) []part.Part {
	if bare, ok := cutBoolean(name); ok {
		parts := make([]part.Part, max(len(strings)-1, 0))
		for i := range parts {
			parts[i] = part.NewBooleanAttributePart(element, bare)
		}
		return parts
	}
	return part.NewAttributeCommitter(element, name, strings).Parts()
}

// NodePart implements Processor.
func (s *Standard) NodePart(start, end *html.Node) part.Part {
	if s.cfg.htmlFilter != nil {
		return part.NewNodePart(start, end, part.WithHTMLFilter(s.cfg.htmlFilter))
	}
	return part.NewNodePart(start, end)
}

// TextParts implements Processor.
func (s *Standard) TextParts(node *html.Node, strings []string) []part.Part {
	return part.NewTextCommitter(node, strings).Parts()
}

func cutBoolean(name string) (string, bool) {
	bare, ok := strings.CutPrefix(name, BooleanPrefix)
	if !ok || bare == "" {
		return name, false
	}
	return bare, true
}
