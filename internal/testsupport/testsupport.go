// Package testsupport holds helpers shared by the module's tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
	"github.com/goliatone/go-fragment/pkg/template"
)

// MustParse compiles markup, failing the test on error.
func MustParse(t *testing.T, markup string, options ...template.Option) *template.Template {
	t.Helper()

	tmpl, err := template.Parse(markup, options...)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	return tmpl
}

// MustFragment parses markup into a fragment root without compiling it.
func MustFragment(t *testing.T, markup string) *html.Node {
	t.Helper()

	root, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return root
}

// MustRender renders n, failing the test on error.
func MustRender(t *testing.T, n *html.Node) string {
	t.Helper()

	out, err := dom.RenderString(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGoldenString reads a golden file and returns its content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
