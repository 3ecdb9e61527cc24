// Package store owns the database handle the repos run against
// repos see only RowQuerier and TxRunner, never pgx
package store

import (
	"context"
	"errors"
	"fmt"

	"spacebio/internal/platform/logger"
	"spacebio/internal/platform/store/pg"
)

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set; callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the statement surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactions to RowQuerier
type TxRunner interface {
	RowQuerier
	// Tx runs fn in a read write transaction, rolled back when fn errors
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
	// ReadTx runs fn in a read only repeatable read transaction so every statement sees one snapshot
	ReadTx(ctx context.Context, fn func(q RowQuerier) error) error
}

// QueryTracer receives one event per statement
type QueryTracer = pg.QueryTracer

// QueryEvent is the payload handed to a QueryTracer
type QueryEvent = pg.QueryEvent

// Store holds the opened backends; PG is nil when postgres is disabled
type Store struct {
	Log logger.Logger
	PG  TxRunner

	tracers []QueryTracer
}

// Option configures Open
type Option func(*Store)

// WithLogger sets the logger for connection and statement logs
func WithLogger(log logger.Logger) Option { return func(s *Store) { s.Log = log } }

// WithQueryTracer adds a statement observer such as the metrics collector
func WithQueryTracer(t QueryTracer) Option {
	return func(s *Store) {
		if t != nil {
			s.tracers = append(s.tracers, t)
		}
	}
}

// Open connects the backends enabled in cfg
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}
	if cfg.PG.Enabled {
		if err := openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Ping reports whether every opened backend answers; readiness probes call it
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.PG.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases the pool; safe on a nil or empty Store
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
