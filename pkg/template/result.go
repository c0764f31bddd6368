package template

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragment/pkg/dom"
	"github.com/goliatone/go-fragment/pkg/part"
	"github.com/goliatone/go-fragment/pkg/processor"
	"github.com/goliatone/go-fragment/pkg/values"
)

// Result pairs a compiled template with the values of one render call and the
// processor used to bind them.
type Result struct {
	Template  *Template
	Values    values.Values
	Processor processor.Processor
}

var _ part.Mountable = (*Result)(nil)

// WithProcessor returns a copy of r bound through p.
func (r *Result) WithProcessor(p processor.Processor) *Result {
	out := *r
	out.Processor = p
	return &out
}

// Instantiate creates an instance of the template and applies the values.
func (r *Result) Instantiate() (*Instance, error) {
	if r == nil || r.Template == nil {
		return nil, fmt.Errorf("template: result has no template")
	}
	inst := NewInstance(r.Template, r.Processor)
	if err := inst.Update(r.Values); err != nil {
		return nil, err
	}
	return inst, nil
}

// Nodes instantiates the result and hands over the top-level nodes, so a
// result can be the value of another template's node part.
func (r *Result) Nodes() ([]*html.Node, error) {
	_, nodes, err := r.Mount()
	return nodes, err
}

// Mount is Nodes that also returns the backing *Instance, letting a node part
// update it in place on the next commit.
func (r *Result) Mount() (any, []*html.Node, error) {
	inst, err := r.Instantiate()
	if err != nil {
		return nil, nil, err
	}
	root := inst.Fragment()
	children := dom.Children(root)
	for _, c := range children {
		root.RemoveChild(c)
	}
	return inst, children, nil
}

// Remount updates instance with r's values when it was created from the same
// template through a processor of the same name.
func (r *Result) Remount(instance any) (bool, error) {
	inst, ok := instance.(*Instance)
	if !ok || r == nil || r.Template == nil || inst.template != r.Template {
		return false, nil
	}
	p := r.Processor
	if p == nil {
		p = r.Template.processor
	}
	if p.Name() != inst.processor.Name() {
		return false, nil
	}
	if err := inst.Update(r.Values); err != nil {
		return false, err
	}
	return true, nil
}

// Render instantiates the result and writes it to w.
func (r *Result) Render(w io.Writer) error {
	inst, err := r.Instantiate()
	if err != nil {
		return err
	}
	return inst.Render(w)
}

// String renders the result, returning an empty string on failure.
func (r *Result) String() string {
	inst, err := r.Instantiate()
	if err != nil {
		return ""
	}
	out, err := dom.RenderString(inst.Fragment())
	if err != nil {
		return ""
	}
	return out
}
