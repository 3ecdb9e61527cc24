// Package logger wraps zerolog with the process root logger and request-scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"spacebio/internal/core/version"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level  string
	Format string // console or json
	// Service tags every line; the API, the browse CLI and tests set their own
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Get returns the root logger, initializing it from LOG_* env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger; only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		}

		b := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().
			Str("version", version.Info().Version)
		if opt.Service != "" {
			b = b.Str("service", opt.Service)
		}
		if opt.Component != "" {
			b = b.Str("component", opt.Component)
		}
		for k, v := range opt.StaticFields {
			b = b.Str(k, v)
		}
		if opt.WithCaller {
			b = b.Caller()
		}

		l := b.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&l)
	})
}

// parseLevel accepts zerolog names plus "warning"; anything else is debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type reqKey struct{}

// request holds the ids the HTTP middleware learns about a caller
type request struct {
	id     string
	userID string
}

// WithRequest annotates ctx with the request id and, once the session is known, the user id
// empty values keep whatever an outer middleware stored
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	cur, _ := ctx.Value(reqKey{}).(request)
	next := cur
	if reqID != "" {
		next.id = reqID
	}
	if userID != "" {
		next.userID = userID
	}
	if next == cur {
		return ctx
	}
	return context.WithValue(ctx, reqKey{}, next)
}

// C returns a child of the root logger carrying request_id and user_id from ctx
func C(ctx context.Context) *Logger {
	req, ok := ctx.Value(reqKey{}).(request)
	if !ok {
		return Get()
	}
	b := Get().With()
	if req.id != "" {
		b = b.Str("request_id", req.id)
	}
	if req.userID != "" {
		b = b.Str("user_id", req.userID)
	}
	l := b.Logger()
	return &l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
