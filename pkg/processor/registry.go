package processor

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned by Registry.Get for unknown names.
var ErrNotFound = errors.New("processor: not found")

// Registry stores processors by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu         sync.RWMutex
	processors map[string]Processor
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[string]Processor),
	}
}

// NewDefaultRegistry returns a registry holding the default and sanitizing
// processors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(Default())
	r.MustRegister(Sanitizing(nil))
	return r
}

// Register adds a processor by its Name(). Duplicate names return an error.
func (r *Registry) Register(processor Processor) error {
	if processor == nil {
		return fmt.Errorf("processor: processor is required")
	}
	name := processor.Name()
	if name == "" {
		return fmt.Errorf("processor: processor name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processors[name]; exists {
		return fmt.Errorf("processor: %q already registered", name)
	}

	r.processors[name] = processor
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(processor Processor) {
	if err := r.Register(processor); err != nil {
		panic(err)
	}
}

// Get retrieves a processor by name.
func (r *Registry) Get(name string) (Processor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processor, ok := r.processors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return processor, nil
}

// List returns a sorted list of processor names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.processors))
	for name := range r.processors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a processor is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.processors[name]
	return ok
}
