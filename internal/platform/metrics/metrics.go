// Package metrics owns the prometheus registry and the collectors the API reports into
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spacebio/internal/platform/logger"
	"spacebio/internal/platform/store/pg"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spacebio"

// Metrics holds the registry and every collector
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	searches *prometheus.CounterVec
	queries  *prometheus.HistogramVec
	logins   *prometheus.CounterVec
}

// New builds a registry with process and runtime collectors plus the API collectors
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_searches_total",
			Help:      "Catalog searches by outcome and whether a keyword was given",
		}, []string{"outcome", "keyword"}),
		queries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pg_query_duration_seconds",
			Help:      "Postgres statement latency by verb and result",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"verb", "result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_logins_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.searches, m.queries, m.logins,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
		ErrorLog:      promLog{},
	})
}

type promLog struct{}

func (promLog) Println(v ...any) { logger.Named("metrics").Warn().Msg(fmt.Sprint(v...)) }

// ObserveSearch counts one catalog search
// nil receivers are no-ops so services can run without metrics in tests
func (m *Metrics) ObserveSearch(outcome string, keyword bool) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome, strconv.FormatBool(keyword)).Inc()
}

// ObserveLogin counts one login attempt
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

// OnQuery implements the store query tracer
func (m *Metrics) OnQuery(_ context.Context, ev pg.QueryEvent) {
	if m == nil {
		return
	}
	result := "ok"
	if ev.Err != nil {
		result = "error"
	}
	m.queries.WithLabelValues(verb(ev.SQL), result).Observe(float64(ev.ElapsedUS) / 1e6)
}

// verb is the lowercased leading keyword, CTEs count as select
func verb(sql string) string {
	f := strings.Fields(sql)
	if len(f) == 0 {
		return "other"
	}
	switch v := strings.ToLower(f[0]); v {
	case "select", "insert", "update", "delete", "begin", "commit", "rollback":
		return v
	case "with":
		return "select"
	}
	return "other"
}

// Middleware records request count and latency labelled by chi route pattern
// unmatched routes share one label so scanners cannot blow up cardinality
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
