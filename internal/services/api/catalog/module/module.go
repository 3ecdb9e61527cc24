// Package module wires the experiment catalog into the API using modkit
package module

import (
	modkit "spacebio/internal/modkit"
	"spacebio/internal/modkit/httpkit"
	anndomain "spacebio/internal/services/api/annotations/domain"
	cathttp "spacebio/internal/services/api/catalog/http"
	catrepo "spacebio/internal/services/api/catalog/repo"
	catsvc "spacebio/internal/services/api/catalog/service"
)

// Ports are the ports the catalog consumes from other modules
type Ports struct {
	Lookup anndomain.LookupPort
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc catsvc.Service
}

// New constructs the catalog module; pass annotation lookup with modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("catalog"), modkit.WithPrefix("/experiments")}, opts...)

	var lookup anndomain.LookupPort
	if p, ok := modkit.PortsAs[Ports](b); ok {
		lookup = p.Lookup
	}

	m := &Module{svc: catsvc.New(deps.PG, catrepo.NewPG(), catsvc.Options{
		Lookup:           lookup,
		Metrics:          deps.Metrics,
		StatsTTL:         o.StatsTTL,
		StatementTimeout: o.StatementTimeout,
	})}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { cathttp.Register(r, m.svc, o.Public) })
	return m
}

// Ports returns the catalog service port
func (m *Module) Ports() any { return m.svc }
