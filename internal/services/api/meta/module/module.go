// Package module mounts the meta probes under /meta
package module

import (
	"context"
	"time"

	"spacebio/internal/core/version"
	modkit "spacebio/internal/modkit"
	"spacebio/internal/modkit/httpkit"
	metahttp "spacebio/internal/services/api/meta/http"
)

type pinger interface {
	Ping(context.Context) error
}

type meta struct {
	modkit.Base
}

// New builds the meta module; /ready pings the store when deps carry one
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	spec := modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)

	pg := metahttp.Check{Name: "pg"}
	if p, ok := deps.PG.(pinger); ok && p != nil {
		pg.Ping = p.Ping
	}
	d := metahttp.Deps{
		ServiceName:  version.Service,
		StartedAt:    time.Now(),
		Checks:       []metahttp.Check{pg},
		ReadyTimeout: deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	return &meta{Base: modkit.NewBase(spec, func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// Ports implements modkit.Module; meta exposes none
func (m *meta) Ports() any { return nil }
