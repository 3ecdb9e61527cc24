package module

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the port sets of the modules mounted into one API
// api.Mount owns one per router so tests can mount twice in a process
type Registry struct {
	mu    sync.RWMutex
	ports map[string]any
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{ports: map[string]any{}} }

// Add records m under its name; a second module with the same name is an error
func (r *Registry) Add(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ports[m.Name()]; dup {
		return fmt.Errorf("module: %q mounted twice", m.Name())
	}
	r.ports[m.Name()] = m.Ports()
	return nil
}

// Has reports whether a module called name was added
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ports[name]
	return ok
}

// Names lists the added modules in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.ports))
	for n := range r.ports {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// PortsAs fetches the port set of name and resolves T from it the way PortsOf does
func PortsAs[T any](r *Registry, name string) (T, bool) {
	var zero T
	r.mu.RLock()
	p, ok := r.ports[name]
	r.mu.RUnlock()
	if !ok {
		return zero, false
	}
	return resolve[T](p)
}
