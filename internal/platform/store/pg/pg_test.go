package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"spacebio/internal/platform/testkit"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dsn = "postgres://spacebio:pw@db:5432/spacebio?sslmode=disable"

func TestPoolConfig(t *testing.T) {
	cases := []struct {
		name       string
		cfg        Config
		wantErr    bool
		wantConns  int32
		wantApp    string
		wantTracer bool
	}{
		{name: "bad url", cfg: Config{URL: "://bad"}, wantErr: true},
		{name: "defaults", cfg: Config{URL: dsn + "&pool_max_conns=3"}, wantConns: 3},
		{name: "knobs", cfg: Config{URL: dsn, MaxConns: 7, AppName: "spacebio-api", Tracer: Multi(&recorder{})}, wantConns: 7, wantApp: "spacebio-api", wantTracer: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pc, err := PoolConfig(c.cfg)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v", err)
			}
			if err != nil {
				return
			}
			if pc.MaxConns != c.wantConns || pc.ConnConfig.RuntimeParams["application_name"] != c.wantApp {
				t.Fatalf("pool config = %d %q", pc.MaxConns, pc.ConnConfig.RuntimeParams["application_name"])
			}
			if (pc.ConnConfig.Tracer != nil) != c.wantTracer {
				t.Fatalf("tracer = %v", pc.ConnConfig.Tracer)
			}
		})
	}
}

func TestOpen_UsesPoolSeam(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return nil, errors.New("boom")
	})
	if _, err := Open(context.Background(), Config{URL: dsn, MaxConns: 2}); err == nil {
		t.Fatal("expected pool error")
	}
	if seen == nil || seen.MaxConns != 2 {
		t.Fatalf("seam got %+v", seen)
	}
}

type recorder struct{ evs []QueryEvent }

func (r *recorder) OnQuery(_ context.Context, ev QueryEvent) { r.evs = append(r.evs, ev) }

func TestBridge(t *testing.T) {
	rec := &recorder{}
	cases := []struct {
		slow     time.Duration
		err      error
		wantSlow bool
	}{
		{slow: 0, wantSlow: true},
		{slow: time.Hour},
		{slow: -1, err: errors.New("check violation")},
	}
	for _, c := range cases {
		b := &bridge{out: rec, slow: c.slow}
		ctx := b.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "select 1 where $1", Args: []any{true}})
		b.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: c.err})

		ev := rec.evs[len(rec.evs)-1]
		if ev.SQL != "select 1 where $1" || len(ev.Args) != 1 || ev.Slow != c.wantSlow || !errors.Is(ev.Err, c.err) {
			t.Fatalf("event = %+v", ev)
		}
	}

	n := len(rec.evs)
	(&bridge{out: rec}).TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if len(rec.evs) != n {
		t.Fatal("end without start should not emit")
	}
}
