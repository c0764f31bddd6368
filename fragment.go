// Package fragment compiles HTML fragments carrying {{key}} placeholders into
// reusable templates and binds values into instances of them. It re-exports
// the common entry points of the pkg/ packages.
package fragment

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-fragment/pkg/marker"
	"github.com/goliatone/go-fragment/pkg/part"
	"github.com/goliatone/go-fragment/pkg/processor"
	"github.com/goliatone/go-fragment/pkg/template"
	"github.com/goliatone/go-fragment/pkg/values"
)

// Values aliases values.Map for callers building keyed values inline.
type Values = values.Map

// Option aliases template.Option so callers can configure compilation from
// the root package.
type Option = template.Option

// HTML marks trusted markup bound into node positions.
type HTML = part.HTML

var defaultCache = template.NewCache()

// Compile parses markup into a reusable template.
func Compile(markup string, options ...Option) (*template.Template, error) {
	return template.Parse(markup, options...)
}

// MustCompile is Compile that panics on error. Useful for package-level
// template variables.
func MustCompile(markup string, options ...Option) *template.Template {
	t, err := Compile(markup, options...)
	if err != nil {
		panic(err)
	}
	return t
}

// CompileLiteral compiles tagged-literal fragments. Values for the resulting
// template are positional, see Positional.
func CompileLiteral(fragments []string, options ...Option) (*template.Template, error) {
	opts := append([]Option{template.WithStrings(fragments)}, options...)
	return template.Parse(marker.Join(fragments), opts...)
}

// Positional keys values by position for templates built with CompileLiteral.
func Positional(vals ...any) values.Map {
	return values.Positional(vals...)
}

// Cached returns the shared compiled template for markup.
func Cached(markup string) (*template.Template, error) {
	return defaultCache.Get(markup)
}

// Render compiles markup (through the shared cache), binds vals and returns
// the resulting HTML.
func Render(markup string, vals values.Values) (string, error) {
	t, err := Cached(markup)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Update(vals).Render(&buf); err != nil {
		return "", fmt.Errorf("fragment: render: %w", err)
	}
	return buf.String(), nil
}

// Processors returns a registry holding the built-in processors.
func Processors() *processor.Registry {
	return processor.NewDefaultRegistry()
}

// WithProcessor forwards to template.WithProcessor.
func WithProcessor(p processor.Processor) Option {
	return template.WithProcessor(p)
}
