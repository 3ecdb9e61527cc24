// Package pg opens the pgx pool the store sits on and reports statement timings to a QueryTracer
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	AppName  string
	// Slow flags statements at or over this duration, negative disables
	Slow   time.Duration
	Tracer QueryTracer
}

var newPool = pgxpool.NewWithConfig

// Open builds the pool without waiting for the server; callers ping before use
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	return newPool(ctx, pcfg)
}

// PoolConfig parses cfg.URL and applies the pool knobs and tracer
func PoolConfig(cfg Config) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse pg url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Tracer != nil {
		pcfg.ConnConfig.Tracer = &bridge{out: cfg.Tracer, slow: cfg.Slow}
	}
	return pcfg, nil
}
