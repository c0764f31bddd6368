package part

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"
)

// Part binds values to one dynamic slot of an instantiated template.
// SetValue only records the pending value; Commit applies it to the tree.
type Part interface {
	SetValue(value any)
	Commit() error
}

// Nodes is implemented by values that expand into a list of nodes when
// committed to a node part, such as nested template results.
type Nodes interface {
	Nodes() ([]*html.Node, error)
}

// Mountable is implemented by values that render through an updatable
// instance, such as template results. A node part keeps the instance returned
// by Mount and offers it to the next Mountable value through Remount, which
// updates it in place when it still fits.
type Mountable interface {
	Nodes
	// Mount creates an instance and returns it with its top-level nodes.
	Mount() (instance any, nodes []*html.Node, err error)
	// Remount applies the value to an instance from an earlier Mount. It
	// reports false, leaving the instance untouched, when it cannot be reused.
	Remount(instance any) (bool, error)
}

type undefined struct{}

func (undefined) String() string { return "" }

// Undefined is the pending value of a part whose key is missing from the
// values container.
var Undefined any = undefined{}

// HTML is trusted markup. Node parts parse it instead of escaping it.
type HTML string

// IsUndefined reports whether v is nil or Undefined.
func IsUndefined(v any) bool {
	return v == nil || v == Undefined
}

// isPrimitive reports whether v can be compared for dirty checking.
func isPrimitive(v any) bool {
	switch v.(type) {
	case nil, undefined, string, HTML, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Stringify converts a bound value to the text used for attributes and text
// nodes. nil and Undefined yield an empty string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil, undefined:
		return ""
	case string:
		return t
	case HTML:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	default:
		return fmt.Sprint(v)
	}
}

// Truthy reports whether v enables a boolean attribute.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "false"
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
