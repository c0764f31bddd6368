package main

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type describeCmd struct {
	Template string `arg:"" help:"Template file or '-' for stdin"`
	Format   string `help:"Output format" default:"yaml" enum:"yaml,json"`
	Static   bool   `help:"Also print the compiled static markup"`
}

type description struct {
	Parts  any    `json:"parts" yaml:"parts"`
	Static string `json:"static,omitempty" yaml:"static,omitempty"`
}

// Run prints the template's descriptors.
func (c *describeCmd) Run(e *env) error {
	tmpl, err := loadTemplate(e, c.Template)
	if err != nil {
		return err
	}
	out := description{Parts: tmpl.Parts()}
	if c.Static {
		out.Static = tmpl.String()
	}

	if c.Format == "json" {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	enc := yaml.NewEncoder(e.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
