//go:build integration_pg

package store_test

import (
	"context"
	"io"
	"testing"
	"time"

	perr "spacebio/internal/platform/errors"
	"spacebio/internal/platform/store"
	"spacebio/internal/platform/testkit/pgtest"

	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := store.Open(ctx, store.Config{
		AppName: "spacebio-store-it",
		PG:      store.PGConfig{Enabled: true, URL: pgtest.Start(t), MaxConns: 4, SlowQueryMs: 1000},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestPGDB_Integration(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := s.PG.Exec(ctx, `create table notes (id int primary key, body text not null)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	var app string
	if err := s.PG.QueryRow(ctx, `select current_setting('application_name')`).Scan(&app); err != nil || app != "spacebio-store-it" {
		t.Fatalf("application_name = %q %v", app, err)
	}

	t.Run("tx commit and rollback", func(t *testing.T) {
		err := s.PG.Tx(ctx, func(q store.RowQuerier) error {
			_, err := q.Exec(ctx, `insert into notes values (1, 'kept')`)
			return err
		})
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
		_ = s.PG.Tx(ctx, func(q store.RowQuerier) error {
			_, _ = q.Exec(ctx, `insert into notes values (2, 'dropped')`)
			return perr.Internalf("abort")
		})
		var n int
		if err := s.PG.QueryRow(ctx, `select count(*) from notes`).Scan(&n); err != nil || n != 1 {
			t.Fatalf("count = %d %v", n, err)
		}
	})

	t.Run("read tx rejects writes", func(t *testing.T) {
		err := s.PG.ReadTx(ctx, func(q store.RowQuerier) error {
			_, err := q.Exec(ctx, `insert into notes values (3, 'nope')`)
			return err
		})
		if !perr.IsSQLState(err, "25006") {
			t.Fatalf("expected read_only_sql_transaction, got %v", err)
		}
	})

	t.Run("read tx sees one snapshot", func(t *testing.T) {
		err := s.PG.ReadTx(ctx, func(q store.RowQuerier) error {
			var before, after int
			if err := q.QueryRow(ctx, `select count(*) from notes`).Scan(&before); err != nil {
				return err
			}
			if _, err := s.PG.Exec(ctx, `insert into notes values (4, 'concurrent')`); err != nil {
				return err
			}
			if err := q.QueryRow(ctx, `select count(*) from notes`).Scan(&after); err != nil {
				return err
			}
			if before != after {
				t.Fatalf("snapshot moved: %d -> %d", before, after)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("read tx: %v", err)
		}
	})

	t.Run("rows iterate", func(t *testing.T) {
		rs, err := s.PG.Query(ctx, `select id, body from notes order by id`)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		defer rs.Close()
		var ids []int
		for rs.Next() {
			var (
				id   int
				body string
			)
			if err := rs.Scan(&id, &body); err != nil {
				t.Fatalf("scan: %v", err)
			}
			ids = append(ids, id)
		}
		if rs.Err() != nil || len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
			t.Fatalf("ids = %v err = %v", ids, rs.Err())
		}
	})
}
