package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spacebio/internal/modkit/module"
	"spacebio/internal/platform/config"
	"spacebio/internal/platform/metrics"
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/session"
	"spacebio/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

var errDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// downPG is a store that cannot be reached
type downPG struct{}

type errRow struct{}

func (errRow) Scan(...any) error { return errDown }

func (downPG) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, errDown }
func (downPG) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, errDown }
func (downPG) QueryRow(context.Context, string, ...any) store.Row             { return errRow{} }
func (downPG) Tx(context.Context, func(store.RowQuerier) error) error         { return errDown }
func (downPG) ReadTx(context.Context, func(store.RowQuerier) error) error     { return errDown }
func (downPG) Ping(context.Context) error                                     { return errDown }

func mount(t *testing.T) (http.Handler, error) {
	t.Helper()
	h, _, err := mountWith(t)
	return h, err
}

func mountWith(t *testing.T) (http.Handler, *module.Registry, error) {
	t.Helper()
	reg := module.NewRegistry()

	m, err := metrics.New()
	if err != nil {
		t.Fatal(err)
	}
	mux := chi.NewRouter()
	err = Mount(context.Background(), phttp.AdaptChi(mux), Options{
		Config:        config.New().Prefix("CORE_API_"),
		PG:            downPG{},
		Sessions:      session.New(session.Options{Secret: []byte(strings.Repeat("s", 32))}),
		Metrics:       m,
		EnableSwagger: true,
		Registry:      reg,
	})
	return mux, reg, err
}

func TestMountRoutes(t *testing.T) {
	t.Setenv("CORE_API_ADMIN_EMAIL", "")
	h, reg, err := mountWith(t)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		method, path string
		want         int
	}{
		{"GET", "/api/v1/meta/health", 200},
		{"GET", "/api/v1/meta/version", 200},
		{"GET", "/api/v1/meta/ready", 503},
		{"GET", "/api/v1/auth/check", 200},
		{"GET", "/api/v1/experiments", 401},
		{"GET", "/api/v1/experiments/stats", 401},
		{"GET", "/api/v1/annotations", 401},
		{"POST", "/api/v1/annotations", 401},
		{"GET", "/api/v1/annotations/search/microgravity", 503},
		{"POST", "/api/v1/auth/logout", 204},
		{"GET", "/api/docs/doc.json", 200},
		{"GET", "/metrics", 200},
		{"GET", "/api/v1/nope", 404},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
			if rr.Code != c.want {
				t.Fatalf("status %d want %d: %s", rr.Code, c.want, rr.Body.String())
			}
		})
	}

	for _, name := range []string{"meta", "auth", "catalog", "annotations", "contact"} {
		if !reg.Has(name) {
			t.Fatalf("module %q not registered: %v", name, reg.Names())
		}
	}
}

func TestMountCatalogPublic(t *testing.T) {
	t.Setenv("CORE_API_CATALOG_PUBLIC", "true")
	h, err := mount(t)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/experiments?keyword=plants", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
}

func TestMountAdminBootstrapFails(t *testing.T) {
	t.Setenv("CORE_API_ADMIN_EMAIL", "admin@example.org")
	t.Setenv("CORE_API_ADMIN_PASSWORD", "correct-horse")
	if _, err := mount(t); err == nil {
		t.Fatal("expected bootstrap error against an unreachable store")
	}
}
