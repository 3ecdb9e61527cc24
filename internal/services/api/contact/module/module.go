// Package module wires the contact form into the API using modkit
package module

import (
	modkit "spacebio/internal/modkit"
	"spacebio/internal/modkit/httpkit"
	contacthttp "spacebio/internal/services/api/contact/http"
	contactsvc "spacebio/internal/services/api/contact/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc contactsvc.Service
}

// New constructs the contact module
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("contact"), modkit.WithPrefix("/contact")}, opts...)

	m := &Module{svc: contactsvc.New()}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { contacthttp.Register(r, m.svc) })
	return m
}

// Ports returns the contact service port
func (m *Module) Ports() any { return m.svc }
