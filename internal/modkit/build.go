// Package modkit builds API modules from a name, a prefix and their route registration
package modkit

import (
	"net/http"
)

// Spec is the resolved mount description of one module
type Spec struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Option adjusts a Spec
type Option func(*Spec)

// WithName sets the module name used in logs and the registry
func WithName(name string) Option { return func(s *Spec) { s.Name = name } }

// WithPrefix sets the path the module mounts under
func WithPrefix(prefix string) Option { return func(s *Spec) { s.Prefix = prefix } }

// WithMiddlewares appends per module middleware, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Spec) { s.Mw = append(s.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes from other modules
// the bundle type belongs to the consuming module
func WithPorts[T any](p T) Option { return func(s *Spec) { s.Ports = p } }

// Build applies a module's defaults and then the caller's opts
func Build(defaults []Option, opts ...Option) Spec {
	var s Spec
	for _, o := range append(append([]Option(nil), defaults...), opts...) {
		o(&s)
	}
	return s
}

// PortsAs returns the ports bundle when it has type T
func PortsAs[T any](s Spec) (T, bool) {
	p, ok := s.Ports.(T)
	return p, ok
}
