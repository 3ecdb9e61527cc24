// Package api composes the HTTP API from its modules
package api

import (
	"context"

	"spacebio/internal/modkit"
	"spacebio/internal/modkit/httpkit"
	"spacebio/internal/modkit/module"
	"spacebio/internal/modkit/repokit"
	"spacebio/internal/modkit/swaggerkit"
	"spacebio/internal/platform/config"
	"spacebio/internal/platform/logger"
	"spacebio/internal/platform/metrics"
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/net/middleware"
	"spacebio/internal/platform/session"

	annmod "spacebio/internal/services/api/annotations/module"
	authmod "spacebio/internal/services/api/auth/module"
	catalogmod "spacebio/internal/services/api/catalog/module"
	contactmod "spacebio/internal/services/api/contact/module"
	metamod "spacebio/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	// Config is the CORE_API_ scoped view
	Config   config.Conf
	PG       repokit.TxRunner
	Sessions *session.Store
	// Metrics may be nil; /metrics is only served when it is set
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
	// Registry receives every mounted module; nil gets a private one
	Registry *module.Registry
}

// Mount builds every module, bootstraps the admin account and mounts the routes
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	deps := modkit.Deps{
		Log:      *logger.Named("api"),
		Cfg:      opt.Config,
		PG:       opt.PG,
		Sessions: opt.Sessions,
		Metrics:  opt.Metrics,
	}

	// annotations first so the catalog can borrow its lookup port
	annotations := annmod.New(deps)
	lookup := module.MustPortsOf[annmod.Ports](annotations).Lookup
	catalog := catalogmod.New(deps, catalogmod.FromConfig(deps.Cfg),
		modkit.WithPorts(catalogmod.Ports{Lookup: lookup}),
	)

	auth := authmod.New(deps, authmod.FromConfig(deps.Cfg))
	if err := auth.Bootstrap(ctx); err != nil {
		return err
	}

	mods := []module.Module{
		metamod.New(deps),
		auth,
		catalog,
		annotations,
		contactmod.New(deps),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Origins:    deps.Cfg.MayCSV("CORS_ORIGINS", nil),
		CORSMaxAge: deps.Cfg.MayInt("CORS_MAX_AGE", 300),
		Identity:   opt.Sessions,
		Metrics:    opt.Metrics,
		Timeout:    deps.Cfg.MayDuration("REQUEST_TIMEOUT", 0),
		Slow:       deps.Cfg.MayDuration("SLOW_REQUEST", 0),
	})

	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled:     opt.EnableSwagger,
		TitleSuffix: deps.Cfg.MayString("DOCS_TITLE_SUFFIX", ""),
		BasePath:    httpkit.APIV1,
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler,
		middleware.Identity(opt.Sessions), middleware.RequireAdmin(phttp.JSON))
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	reg := opt.Registry
	if reg == nil {
		reg = module.NewRegistry()
	}
	for _, m := range mods {
		if err := reg.Add(m); err != nil {
			return err
		}
	}

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	deps.Log.Info().Strs("modules", reg.Names()).Msg("api mounted")
	return nil
}
