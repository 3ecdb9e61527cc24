// @title         Space Biology Dashboard API
// @version       0.1.0
// @description   Experiment catalog search, admin annotations and the session gate
// @BasePath      /api/v1

package main

import (
	"context"
	"os/signal"
	"syscall"

	"spacebio/internal/core/version"
	"spacebio/internal/modkit/repokit"
	"spacebio/internal/platform/config"
	"spacebio/internal/platform/logger"
	"spacebio/internal/platform/metrics"
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/session"
	"spacebio/internal/platform/store"
	"spacebio/internal/platform/store/migrate"

	"spacebio/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")     // HTTP, sessions, modules
	pgCfg := root.Prefix("SERVICE_PGSQL_") // postgres

	l := logger.Get()
	l.Info().Interface("build", version.Info()).Msg("starting")

	m, err := metrics.New()
	if err != nil {
		l.Panic().Err(err).Msg("metrics.New failed")
	}

	stCfg := store.ConfigFrom(pgCfg, version.Service)
	if apiCfg.MayBool("MIGRATE", true) {
		if _, err := migrate.Up(ctx, stCfg.PG.URL); err != nil {
			l.Panic().Err(err).Msg("migrations failed")
		}
	}

	st, err := store.Open(ctx, stCfg, store.WithLogger(*l), store.WithQueryTracer(m))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustPing(ctx, "pg", st)

	// reads CORE_API_PORT / CORE_API_ADDR
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(ctx, srv.Router(), api.Options{
		Config:         apiCfg,
		PG:             st.PG,
		Sessions:       session.New(session.OptionsFrom(apiCfg)),
		Metrics:        m,
		EnableSwagger:  apiCfg.MayBool("ENABLE_SWAGGER", false),
		EnableProfiler: apiCfg.MayBool("ENABLE_PROFILER", false),
	}); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
