// Package module wires the session gate into the API using modkit
package module

import (
	"context"

	modkit "spacebio/internal/modkit"
	"spacebio/internal/modkit/httpkit"
	"spacebio/internal/platform/logger"
	authhttp "spacebio/internal/services/api/auth/http"
	authrepo "spacebio/internal/services/api/auth/repo"
	authsvc "spacebio/internal/services/api/auth/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc  authsvc.Service
	opts Options
}

// New constructs the auth module; deps.Sessions must be set
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	if deps.Sessions == nil {
		panic("auth module requires a session store")
	}
	b := modkit.Build([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)

	m := &Module{
		svc: authsvc.New(deps.PG, authrepo.NewPG(), authsvc.Options{
			LoginRPS:   o.LoginRPS,
			LoginBurst: o.LoginBurst,
			Metrics:    deps.Metrics,
		}),
		opts: o,
	}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { authhttp.Register(r, m.svc, deps.Sessions) })
	return m
}

// Ports returns the auth service port
func (m *Module) Ports() any { return m.svc }

// Bootstrap creates the configured admin account when it is missing
func (m *Module) Bootstrap(ctx context.Context) error {
	if !m.opts.HasAdmin() {
		return nil
	}
	u, err := m.svc.EnsureAdmin(ctx, m.opts.AdminUsername, m.opts.AdminEmail, m.opts.AdminPassword)
	if err != nil {
		return err
	}
	logger.Named("auth").Info().Str("user_id", u.ID).Str("email", u.Email).Msg("admin account ready")
	return nil
}
