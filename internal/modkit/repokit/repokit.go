// Package repokit is the seam between services and their sql repos
// services hold a Binder and bind the repo to whichever Queryer the current tx hands them
package repokit

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"time"

	"spacebio/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

type (
	// Queryer is the statement surface a repo is bound to
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single result row
	Row = store.Row
	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// Binder binds a repo to a Queryer
type Binder[R any] interface {
	Bind(Queryer) R
}

// BindFunc adapts a constructor to Binder
type BindFunc[R any] func(Queryer) R

// Bind panics on a nil Queryer, which is always a wiring bug
func (f BindFunc[R]) Bind(q Queryer) R {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return f(q)
}

// InTx binds the repo inside a read write transaction and runs fn
func InTx[R any](ctx context.Context, db TxRunner, b Binder[R], fn func(q Queryer, r R) error) error {
	return db.Tx(ctx, func(q Queryer) error { return fn(q, b.Bind(q)) })
}

// InReadTx is InTx on a read only snapshot
func InReadTx[R any](ctx context.Context, db TxRunner, b Binder[R], fn func(q Queryer, r R) error) error {
	return db.ReadTx(ctx, func(q Queryer) error { return fn(q, b.Bind(q)) })
}

// IsNoRows reports whether a single row query matched nothing
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, stdsql.ErrNoRows)
}

// MustPing panics unless p answers; ctx without a deadline gets 5s
// used once at boot so a misconfigured database stops the process early
func MustPing(ctx context.Context, name string, p interface{ Ping(context.Context) error }) {
	if p == nil {
		panic(name + ": nil dependency")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(fmt.Sprintf("%s ping failed: %v", name, err))
	}
}
