package store

import (
	"context"
	"fmt"
	"time"

	"spacebio/internal/platform/store/pg"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG builds the pool and waits for postgres to answer before publishing s.PG
// the database container often starts alongside the API, hence the retry loop
func openPG(ctx context.Context, cfg Config, s *Store) error {
	tracers := append([]QueryTracer(nil), s.tracers...)
	if cfg.PG.LogSQL {
		tracers = append(tracers, pg.Tracer(s.Log))
	}
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  cfg.AppName,
		Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
		Tracer:   pg.Multi(tracers...),
	})
	if err != nil {
		return err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	var lastErr error
	backoff := backoffStart
	for i := range attempts {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = pool.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			s.PG = newPGDB(pool)
			return nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Int("of", attempts).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			pool.Close()
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	pool.Close()
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
