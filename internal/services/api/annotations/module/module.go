// Package module wires annotations into the API using modkit
package module

import (
	modkit "spacebio/internal/modkit"
	"spacebio/internal/modkit/httpkit"
	annhttp "spacebio/internal/services/api/annotations/http"
	annrepo "spacebio/internal/services/api/annotations/repo"
	annsvc "spacebio/internal/services/api/annotations/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc annsvc.Service
}

// New constructs an annotations module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("annotations"), modkit.WithPrefix("/annotations")}, opts...)

	m := &Module{svc: annsvc.New(deps.PG, annrepo.NewPG())}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { annhttp.Register(r, m.svc) })
	return m
}
