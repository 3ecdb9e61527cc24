package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under prefix when enabled, e.g. "/debug/pprof/heap" for "/debug"
// guard runs before every profile, api.Mount passes the session identity and the admin gate
func MountProfiler(r Router, prefix string, enabled bool, guard ...func(stdhttp.Handler) stdhttp.Handler) {
	if !enabled {
		return
	}
	r.Route(prefix, func(sub Router) {
		sub.Use(guard...)
		// chi routes the profiler on the path below prefix; pprof still sees the full URL
		sub.Handle("/*", mw.Profiler())
	})
}
