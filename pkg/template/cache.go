package template

import (
	"sync"
)

// Cache compiles each distinct markup string once. Templates are keyed by
// the markup itself, so equal markup always shares one Template.
type Cache struct {
	mu        sync.RWMutex
	templates map[string]*Template
	options   []Option
}

// NewCache creates a cache compiling with options.
func NewCache(options ...Option) *Cache {
	return &Cache{
		templates: make(map[string]*Template),
		options:   options,
	}
}

// Get returns the template for markup, compiling it on first use.
func (c *Cache) Get(markup string) (*Template, error) {
	c.mu.RLock()
	t, ok := c.templates[markup]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.templates[markup]; ok {
		return t, nil
	}
	t, err := Parse(markup, c.options...)
	if err != nil {
		return nil, err
	}
	c.templates[markup] = t
	return t, nil
}

// Len reports how many templates are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// Reset drops every cached template.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = make(map[string]*Template)
}
