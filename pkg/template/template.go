package template

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
	"github.com/goliatone/go-fragment/pkg/parser"
	"github.com/goliatone/go-fragment/pkg/part"
	"github.com/goliatone/go-fragment/pkg/processor"
	"github.com/goliatone/go-fragment/pkg/values"
)

// Option configures a Template.
type Option func(*config)

type config struct {
	processor processor.Processor
	strings   []string
	logger    *slog.Logger
}

// WithProcessor sets the processor results of the template bind with.
func WithProcessor(p processor.Processor) Option {
	return func(cfg *config) {
		cfg.processor = p
	}
}

// WithStrings passes the tagged-literal fragments the markup was joined from
// to the parser.
func WithStrings(fragments []string) Option {
	return func(cfg *config) {
		cfg.strings = fragments
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Template is a compiled fragment: the static tree, mutated by the parser to
// carry anchors, plus the descriptors that address its dynamic slots. Neither
// changes after New returns.
type Template struct {
	root      *html.Node
	parts     []part.Descriptor
	processor processor.Processor
	logger    *slog.Logger
}

// New compiles root, taking ownership of it. The caller must not touch root
// afterwards.
func New(root *html.Node, options ...Option) *Template {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.processor == nil {
		cfg.processor = processor.Default()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if root == nil {
		root = dom.NewFragment()
	}

	parseOpts := []parser.Option{parser.WithLogger(cfg.logger)}
	if cfg.strings != nil {
		parseOpts = append(parseOpts, parser.WithStrings(cfg.strings))
	}

	t := &Template{
		root:      root,
		parts:     parser.Parse(root, parseOpts...),
		processor: cfg.processor,
		logger:    cfg.logger,
	}
	t.logger.Debug("template: compiled",
		slog.Int("parts", len(t.parts)),
		slog.String("processor", t.processor.Name()),
	)
	return t
}

// Parse parses markup as a fragment and compiles it.
func Parse(markup string, options ...Option) (*Template, error) {
	return ParseReader(strings.NewReader(markup), options...)
}

// ParseReader is Parse for a reader.
func ParseReader(r io.Reader, options ...Option) (*Template, error) {
	root, err := dom.ParseFragment(r)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	return New(root, options...), nil
}

// Parts returns a copy of the template's descriptors.
func (t *Template) Parts() []part.Descriptor {
	return part.Clone(t.parts)
}

// Processor returns the processor results bind with by default.
func (t *Template) Processor() processor.Processor {
	return t.processor
}

// Clone returns a deep copy of the compiled fragment.
func (t *Template) Clone() *html.Node {
	return dom.Clone(t.root)
}

// Update pairs the template with a set of values.
func (t *Template) Update(vals values.Values) *Result {
	return &Result{
		Template:  t,
		Values:    vals,
		Processor: t.processor,
	}
}

// Render writes the compiled static fragment, anchors included.
func (t *Template) Render(w io.Writer) error {
	return dom.Render(w, t.root)
}

// String renders the compiled static fragment.
func (t *Template) String() string {
	out, err := dom.RenderString(t.root)
	if err != nil {
		return ""
	}
	return out
}
