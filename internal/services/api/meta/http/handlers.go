// Package http serves the liveness, readiness and build info probes
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"spacebio/internal/core/version"
	"spacebio/internal/modkit/httpkit"
	"spacebio/internal/platform/logger"
)

// Check is one named readiness probe; a nil Ping is reported as skipped
type Check struct {
	Name string
	Ping func(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	Checks       []Check
	ReadyTimeout time.Duration
	now          func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	if d.now == nil {
		d.now = time.Now
	}
	p := &probes{Deps: d}

	httpkit.Get(r, "/health", p.health)
	httpkit.Get(r, "/ready", p.ready)
	httpkit.Get(r, "/version", p.version)
}

type probes struct{ Deps }

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"spacebio-api"`
	Started string `json:"started" example:"2026-03-02T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ReadyCheck is the outcome of one Check
type ReadyCheck struct {
	Name      string `json:"name"   example:"pg"`
	Status    string `json:"status" example:"ok"` // ok fail skipped
	ElapsedMS int64  `json:"elapsed_ms" example:"3"`
	Error     string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-02T09:05:00Z"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (p *probes) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: p.ServiceName,
		Started: p.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(p.now().Sub(p.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (p *probes) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), p.ReadyTimeout)
	defer cancel()

	results := make([]ReadyCheck, len(p.Checks))
	var g errgroup.Group
	for i, c := range p.Checks {
		g.Go(func() error {
			results[i] = run(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: "ok", Checks: results, Now: p.now().UTC().Format(time.RFC3339)}
	for _, rc := range results {
		if rc.Status != "fail" {
			continue
		}
		out.Status = "fail"
		logger.C(r.Context()).Warn().Str("check", rc.Name).Str("error", rc.Error).Msg("readiness check failed")
	}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

func run(ctx stdctx.Context, c Check) ReadyCheck {
	rc := ReadyCheck{Name: c.Name, Status: "skipped"}
	if c.Ping == nil {
		return rc
	}
	start := time.Now()
	err := c.Ping(ctx)
	rc.ElapsedMS = time.Since(start).Milliseconds()
	if err != nil {
		rc.Status, rc.Error = "fail", err.Error()
		return rc
	}
	rc.Status = "ok"
	return rc
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (p *probes) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
