package vcs

import "fmt"

// Registry holds the available backends in registration order.
//
// Order matters: it is also probing order, and a directory could in
// principle satisfy more than one marker. The registry is write-once at
// startup and read-only afterwards, so no locking is needed.
type Registry struct {
	backends []Backend
	byName   map[string]Backend
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Backend)}
}

// Register appends a backend. Registering a nil backend or a duplicate
// name panics: both indicate a wiring bug, not a runtime condition.
func (r *Registry) Register(b Backend) {
	if b == nil {
		panic("vcs: Register called with nil backend")
	}
	name := b.Name()
	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("vcs: Register called twice for backend %q", name))
	}
	r.byName[name] = b
	r.backends = append(r.backends, b)
}

// All returns the registered backends in registration order. The returned
// slice is shared; callers must not modify it.
func (r *Registry) All() []Backend {
	return r.backends
}

// Lookup returns the backend with the given short name, or nil.
func (r *Registry) Lookup(name string) Backend {
	return r.byName[name]
}

// Names returns the backend short names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for _, b := range r.backends {
		names = append(names, b.Name())
	}
	return names
}
