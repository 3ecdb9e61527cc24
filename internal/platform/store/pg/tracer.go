package pg

import (
	"context"
	"strings"
	"time"

	"spacebio/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// QueryEvent describes one statement after it ran
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer observes statements
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// bridge turns pgx's start and end hooks into one QueryEvent
// pgx ends a query when its rows close, so QueryRow events carry the Scan error
type bridge struct {
	out  QueryTracer
	slow time.Duration
}

type startKey struct{}

type started struct {
	sql  string
	args []any
	at   time.Time
}

func (b *bridge) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startKey{}, started{sql: d.SQL, args: d.Args, at: time.Now()})
}

func (b *bridge) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(startKey{}).(started)
	if !ok {
		return
	}
	elapsed := time.Since(s.at)
	b.out.OnQuery(ctx, QueryEvent{
		SQL:       s.sql,
		Args:      s.args,
		ElapsedUS: elapsed.Microseconds(),
		Err:       d.Err,
		Slow:      b.slow >= 0 && elapsed >= b.slow,
	})
}

// Tracer logs every statement regardless of the root level
// slow statements log at warn
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// Multi fans events out to every non nil tracer, nil when there are none
func Multi(ts ...QueryTracer) QueryTracer {
	var out multi
	for _, t := range ts {
		if t != nil {
			out = append(out, t)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

type multi []QueryTracer

func (m multi) OnQuery(ctx context.Context, ev QueryEvent) {
	for _, t := range m {
		t.OnQuery(ctx, ev)
	}
}

// compact folds runs of whitespace to one space
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
