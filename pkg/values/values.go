// Package values provides the containers templates read bound values from.
package values

import (
	"github.com/goliatone/go-fragment/pkg/marker"
)

// Values maps placeholder keys to values. Lookup is a direct key lookup; no
// path or expression evaluation happens here.
type Values interface {
	Lookup(key string) (any, bool)
}

// Map is the plain map container.
type Map map[string]any

var _ Values = Map(nil)

// Lookup implements Values.
func (m Map) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Func adapts a lookup function.
type Func func(key string) (any, bool)

// Lookup implements Values.
func (f Func) Lookup(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	return f(key)
}

// Positional keys values by their position, matching the placeholders
// marker.Join inserts between tagged-literal fragments.
func Positional(vals ...any) Map {
	m := make(Map, len(vals))
	for i, v := range vals {
		m[marker.Key(i)] = v
	}
	return m
}

// Merge returns a container that consults each layer in order.
func Merge(layers ...Values) Values {
	return Func(func(key string) (any, bool) {
		for _, layer := range layers {
			if layer == nil {
				continue
			}
			if v, ok := layer.Lookup(key); ok {
				return v, true
			}
		}
		return nil, false
	})
}

// Empty never finds a key.
var Empty Values = Map(nil)
