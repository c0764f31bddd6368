package processor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
	"github.com/goliatone/go-fragment/pkg/part"
	"github.com/goliatone/go-fragment/pkg/processor"
)

func TestRegistry_DefaultProcessors(t *testing.T) {
	reg := processor.NewDefaultRegistry()

	if diff := cmp.Diff([]string{processor.DefaultName, processor.SanitizeName}, reg.List()); diff != "" {
		t.Fatalf("processor names mismatch (-want +got):\n%s", diff)
	}
	p, err := reg.Get(processor.DefaultName)
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if p != processor.Default() {
		t.Fatalf("registry returned a different default processor")
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	reg := processor.NewRegistry()
	if err := reg.Register(processor.New(processor.WithName("x"))); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(processor.New(processor.WithName("x"))); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected error for nil processor")
	}
	if !reg.Has("x") || reg.Has("y") {
		t.Fatalf("Has mismatch")
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := processor.NewRegistry().Get("missing")
	if !errors.Is(err, processor.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), `"missing"`) {
		t.Fatalf("error does not name the processor: %v", err)
	}
}

func TestStandard_AttributeParts(t *testing.T) {
	el := &html.Node{Type: html.ElementNode, Data: "p"}
	parts := processor.Default().AttributeParts(el, "class", []string{"a ", " b ", ""})
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	parts[0].SetValue("x")
	parts[1].SetValue("y")
	for _, p := range parts {
		if err := p.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	if v, _ := dom.Attr(el, "class"); v != "a x b y" {
		t.Fatalf("class = %q", v)
	}
}

func TestStandard_BooleanAttribute(t *testing.T) {
	el := &html.Node{Type: html.ElementNode, Data: "button"}
	parts := processor.Default().AttributeParts(el, "?disabled", []string{"", ""})
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if _, ok := parts[0].(*part.BooleanAttributePart); !ok {
		t.Fatalf("expected boolean part, got %T", parts[0])
	}

	parts[0].SetValue(true)
	if err := parts[0].Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if diff := cmp.Diff([]html.Attribute{{Key: "disabled"}}, el.Attr); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizing_FiltersHTML(t *testing.T) {
	parent := &html.Node{Type: html.ElementNode, Data: "div"}
	end := dom.NewAnchor()
	parent.AppendChild(end)

	p := processor.Sanitizing(nil).NodePart(nil, end)
	p.SetValue(part.HTML(`<b class="k">ok</b><script>alert(1)</script>`))
	if err := p.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err := dom.RenderString(parent)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<div><b class="k">ok</b><!----></div>`; got != want {
		t.Fatalf("render = %s, want %s", got, want)
	}
}

func TestSanitizing_Name(t *testing.T) {
	if got := processor.Sanitizing(nil).Name(); got != processor.SanitizeName {
		t.Fatalf("Name = %q", got)
	}
	if got := processor.Sanitizing(nil, processor.WithName("strict")).Name(); got != "strict" {
		t.Fatalf("Name = %q", got)
	}
}
