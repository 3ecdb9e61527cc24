package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is the statement surface shared by the pool and a transaction
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxConn interface {
	pgxQuerier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// querier narrows pgx results to the store interfaces
type querier struct{ q pgxQuerier }

func (x querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := x.q.Exec(ctx, sql, args...)
	return ct, err
}

func (x querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := x.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (x querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return x.q.QueryRow(ctx, sql, args...)
}

// readSnapshot keeps a search count and its page on one snapshot
var readSnapshot = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// pgDB is the postgres TxRunner; tracing happens inside pgx
type pgDB struct {
	querier
	conn  pgxConn
	close func()
}

func newPGDB(pool *pgxpool.Pool) *pgDB {
	return &pgDB{querier: querier{q: pool}, conn: pool, close: pool.Close}
}

func (d *pgDB) Ping(ctx context.Context) error {
	var one int
	return d.QueryRow(ctx, "select 1").Scan(&one)
}

func (d *pgDB) Close() error {
	if d.close != nil {
		d.close()
	}
	return nil
}

func (d *pgDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return d.run(ctx, pgx.TxOptions{}, fn)
}

func (d *pgDB) ReadTx(ctx context.Context, fn func(q RowQuerier) error) error {
	return d.run(ctx, readSnapshot, fn)
}

// run commits when fn succeeds and rolls back otherwise
func (d *pgDB) run(ctx context.Context, opts pgx.TxOptions, fn func(q RowQuerier) error) error {
	return pgx.BeginTxFunc(ctx, d.conn, opts, func(tx pgx.Tx) error {
		return fn(querier{q: tx})
	})
}
