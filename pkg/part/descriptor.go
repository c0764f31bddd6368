package part

// Kind identifies what a descriptor binds to.
type Kind string

const (
	// KindAttribute binds one placeholder inside an attribute value.
	KindAttribute Kind = "attribute"
	// KindNode binds a region of sibling nodes.
	KindNode Kind = "node"
	// KindText binds one placeholder inside the text of an element that can
	// only hold text, such as <title> or <textarea>.
	KindText Kind = "text"
)

// InertIndex marks a descriptor whose marker sits where nothing can be bound,
// such as inside a comment's text.
const InertIndex = -1

// Descriptor records the kind and position of one dynamic slot. Index is the
// ordinal of the anchor node in the template's numbering walk; for node
// descriptors it addresses the end boundary of the region, whose start is the
// anchor's previous sibling.
type Descriptor struct {
	Kind    Kind     `json:"kind" yaml:"kind"`
	Index   int      `json:"index" yaml:"index"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Strings []string `json:"strings,omitempty" yaml:"strings,omitempty"`
	Expr    string   `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Inert reports whether the descriptor can never be bound.
func (d Descriptor) Inert() bool {
	return d.Index < 0
}

// SameSlot reports whether d and o are placeholders of one attribute value or
// of one text-only element, and so are bound as a group.
func (d Descriptor) SameSlot(o Descriptor) bool {
	if d.Kind != o.Kind || d.Index != o.Index || d.Name != o.Name {
		return false
	}
	return d.Kind == KindAttribute || d.Kind == KindText
}

// Clone returns a copy of the descriptors. Strings slices are shared, they are
// never written after parsing.
func Clone(in []Descriptor) []Descriptor {
	if in == nil {
		return nil
	}
	out := make([]Descriptor, len(in))
	copy(out, in)
	return out
}
