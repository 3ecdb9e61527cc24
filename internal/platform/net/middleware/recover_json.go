package middleware

import (
	"net/http"
	"runtime/debug"

	perr "spacebio/internal/platform/errors"
	"spacebio/internal/platform/logger"
	pnet "spacebio/internal/platform/net"
)

// RecoverJSON converts panics into the standard JSON 500 envelope and logs the stack
func RecoverJSON(write Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				reqID := pnet.RequestID(r.Context())
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				if reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}
				env := pnet.Failure(perr.PanicErrf("internal error"), reqID)
				write(w, env.StatusCode, env)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
