package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"spacebio/internal/platform/metrics"
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// StackOptions configures CommonStack
type StackOptions struct {
	Origins     []string
	CORSMaxAge  int
	Identity    middleware.IdentityPort
	Metrics     *metrics.Metrics
	Timeout     time.Duration
	Slow        time.Duration
	QuietRoutes []string
}

// CommonStack returns the API middleware chain, outermost first
// request ids and real ip run before identity so the access log and login throttle can key on them
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.QuietRoutes == nil {
		o.QuietRoutes = []string{APIV1 + "/meta/health"}
	}
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		middleware.CORS(o.Origins, o.CORSMaxAge),
		middleware.Identity(o.Identity),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Skip: o.QuietRoutes}),
		o.Metrics.Middleware(),
		middleware.RecoverJSON(phttp.JSON),
		chimw.NoCache,
		chimw.StripSlashes,
		chimw.NewCompressor(flate.BestSpeed, "application/json").Handler,
		chimw.Timeout(o.Timeout),
	}
}
