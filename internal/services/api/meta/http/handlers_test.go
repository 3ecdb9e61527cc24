package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spacebio/internal/modkit/httpkit"
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func serve[T any](t *testing.T, d Deps, path string) (int, T) {
	t.Helper()
	mux := chi.NewRouter()
	httpkit.MountUnder(phttp.AdaptChi(mux), "/meta", nil, func(r httpkit.Router) { Register(r, d) })
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rr.Code, testkit.DecodeEnvelope[T](t, rr.Body.Bytes()).Data
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		checks []Check
		status int
		want   string
		each   []string
	}{
		{"no checks", nil, 200, "ok", nil},
		{"skipped", []Check{{Name: "pg"}}, 200, "ok", []string{"skipped"}},
		{"store up", []Check{{Name: "pg", Ping: up}}, 200, "ok", []string{"ok"}},
		{"store down", []Check{{Name: "pg", Ping: down}}, 503, "fail", []string{"fail"}},
		{"one of two down", []Check{{Name: "pg", Ping: up}, {Name: "cache", Ping: down}}, 503, "fail", []string{"ok", "fail"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, data := serve[ReadyResponse](t, Deps{Checks: c.checks}, "/meta/ready")
			if code != c.status || data.Status != c.want {
				t.Fatalf("code %d data %+v", code, data)
			}
			if len(data.Checks) != len(c.each) {
				t.Fatalf("checks = %+v", data.Checks)
			}
			for i, want := range c.each {
				if data.Checks[i].Status != want || data.Checks[i].Name != c.checks[i].Name {
					t.Fatalf("check %d = %+v want %s", i, data.Checks[i], want)
				}
			}
			if c.want == "fail" && data.Checks[len(data.Checks)-1].Error != "connection refused" {
				t.Fatalf("error not reported: %+v", data.Checks)
			}
		})
	}
}

func TestReadyTimesOut(t *testing.T) {
	slow := func(ctx context.Context) error { <-ctx.Done(); return ctx.Err() }
	code, _ := serve[ReadyResponse](t, Deps{Checks: []Check{{Name: "pg", Ping: slow}}, ReadyTimeout: 10 * time.Millisecond}, "/meta/ready")
	if code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("code = %d", code)
	}
}

func TestHealth(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	d := Deps{ServiceName: "spacebio-api", StartedAt: start, now: func() time.Time { return start.Add(5 * time.Minute) }}
	code, h := serve[HealthResponse](t, d, "/meta/health")
	want := HealthResponse{OK: true, Service: "spacebio-api", Started: "2026-03-02T09:00:00Z", Uptime: 300}
	if code != 200 || h != want {
		t.Fatalf("health = %d %+v", code, h)
	}
}

func TestVersion(t *testing.T) {
	code, data := serve[map[string]any](t, Deps{}, "/meta/version")
	if code != 200 || data["service"] != "spacebio-api" || data["version"] == "" || data["go"] == nil {
		t.Fatalf("version = %d %v", code, data)
	}
}
