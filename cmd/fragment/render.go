package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-fragment/pkg/part"
	"github.com/goliatone/go-fragment/pkg/template"
	"github.com/goliatone/go-fragment/pkg/values"
)

type renderCmd struct {
	Template    string            `arg:"" help:"Template file or '-' for stdin"`
	Values      string            `short:"f" help:"JSON or YAML values file" type:"existingfile"`
	Set         map[string]string `short:"s" help:"Inline key=value values, applied over the values file"`
	Processor   string            `short:"p" help:"Processor used to bind values" default:"default"`
	Output      string            `short:"o" help:"Output file (stdout if empty)"`
	Interactive bool              `short:"i" help:"Prompt for keys the values do not provide"`
}

// Run renders the template.
func (c *renderCmd) Run(e *env) error {
	proc, err := e.registry.Get(c.Processor)
	if err != nil {
		return err
	}

	tmpl, err := loadTemplate(e, c.Template, template.WithProcessor(proc))
	if err != nil {
		return err
	}

	vals := values.Map{}
	if c.Values != "" {
		vals, err = values.LoadFile(c.Values)
		if err != nil {
			return err
		}
	}
	for key, val := range c.Set {
		vals[key] = val
	}

	if c.Interactive {
		if err := promptMissing(e, tmpl.Parts(), vals); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Update(vals).Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", c.Template, err)
	}

	if c.Output == "" {
		_, err := e.stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(c.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	e.logger.Info("rendered template",
		slog.String("template", c.Template),
		slog.String("output", c.Output),
	)
	return nil
}

func loadTemplate(e *env, path string, options ...template.Option) (*template.Template, error) {
	var r io.Reader
	if path == "-" {
		r = e.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	options = append(options, template.WithLogger(e.logger))
	return template.ParseReader(r, options...)
}

// missingKeys lists the keys of bindable descriptors absent from vals, in
// first-use order.
func missingKeys(descs []part.Descriptor, vals values.Values) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range descs {
		if d.Inert() || d.Expr == "" {
			continue
		}
		if _, dup := seen[d.Expr]; dup {
			continue
		}
		seen[d.Expr] = struct{}{}
		if _, ok := vals.Lookup(d.Expr); !ok {
			out = append(out, d.Expr)
		}
	}
	return out
}
