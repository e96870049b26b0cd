package fragment

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores generators by name.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// NewDefaultRegistry creates a registry holding the EnergyPlus
// co-simulation generators.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, g := range EnergyPlusGenerators() {
		r.MustRegister(g)
	}
	return r
}

// Register adds a generator by its Name(). Duplicate names return an error.
func (r *Registry) Register(g Generator) error {
	if g == nil {
		return fmt.Errorf("fragment: generator is required")
	}
	name := g.Name()
	if name == "" {
		return fmt.Errorf("fragment: generator name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[name]; exists {
		return fmt.Errorf("fragment: generator %q already registered", name)
	}

	r.generators[name] = g
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(g Generator) {
	if err := r.Register(g); err != nil {
		panic(err)
	}
}

// Get retrieves a generator by name.
func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.generators[name]
	if !ok {
		return nil, &UnknownGeneratorError{Name: name}
	}
	return g, nil
}

// List returns a sorted list of generator names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a generator is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.generators[name]
	return ok
}
