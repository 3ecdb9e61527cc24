// Package middleware holds the session gates, panic recovery and access logging
package middleware

import (
	"net/http"
	"slices"
	"time"

	"spacebio/internal/platform/logger"
	pnet "spacebio/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at or over this duration at warn, 0 disables
	Slow time.Duration
	// Skip lists exact paths that never log, e.g. probes
	Skip []string
}

// AccessLogZerolog writes one line per request once the handler returns
// 5xx answers log at error so failed catalog reads stand out from slow ones
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(opt.Skip, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Int("status", status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("role", string(pnet.IdentityFrom(r.Context()).Role)).
				Int("bytes", ww.BytesWritten()).
				Msg("request done")
		})
	}
}
