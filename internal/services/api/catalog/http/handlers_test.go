package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"spacebio/internal/modkit/httpkit"
	perr "spacebio/internal/platform/errors"
	pnet "spacebio/internal/platform/net"
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/services/api/catalog/domain"

	"github.com/go-chi/chi/v5"
)

func TestParseSearch(t *testing.T) {
	cases := []struct {
		query string
		field string
		check func(domain.SearchInput) bool
	}{
		{"", "", func(in domain.SearchInput) bool {
			return in.Page == 1 && in.Limit == domain.DefaultLimit && in.YearFrom == nil && in.YearTo == nil
		}},
		{"page=2&limit=9&yearFrom=2010&yearTo=2020&category=Plant&organism=Rice&keyword=%20root%20", "", func(in domain.SearchInput) bool {
			return in.Page == 2 && in.Limit == 9 && *in.YearFrom == 2010 && *in.YearTo == 2020 &&
				in.Category == "Plant" && in.Organism == "Rice" && in.Keyword == "root"
		}},
		{"yearFrom=", "", func(in domain.SearchInput) bool { return in.YearFrom == nil }},
		{"page=two", "page", nil},
		{"limit=1.5", "limit", nil},
		{"yearFrom=abc", "yearFrom", nil},
		{"yearTo=20x5", "yearTo", nil},
	}
	for _, c := range cases {
		t.Run(c.query, func(t *testing.T) {
			in, err := ParseSearch(httptest.NewRequest(stdhttp.MethodGet, "/experiments?"+c.query, nil))
			if c.field != "" {
				if w := perr.WireFrom(err); w.Code != perr.ErrorCodeValidation || w.Field != c.field {
					t.Fatalf("wire = %+v", w)
				}
				return
			}
			if err != nil || !c.check(in) {
				t.Fatalf("in = %+v err = %v", in, err)
			}
		})
	}
}

type fakeSvc struct{ last domain.SearchInput }

func (f *fakeSvc) Search(_ context.Context, in domain.SearchInput) (domain.SearchResult, error) {
	f.last = in
	return domain.SearchResult{Experiments: []domain.Experiment{}, CurrentPage: in.Page}, nil
}

func (f *fakeSvc) Get(_ context.Context, id string) (domain.Experiment, error) {
	return domain.Experiment{ID: id}, nil
}

func (f *fakeSvc) Stats(context.Context) (domain.Stats, error) {
	return domain.Stats{ByYear: []domain.Bucket[int]{{ID: 2018, Count: 2}}}, nil
}

func serve(public bool, path string, loggedIn bool) *httptest.ResponseRecorder {
	mux := chi.NewRouter()
	if loggedIn {
		mux.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				ctx := pnet.WithIdentity(r.Context(), pnet.Identity{ID: "u", Role: pnet.RoleUser})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
	}
	httpkit.MountUnder(phttp.AdaptChi(mux), "/experiments", nil, func(r httpkit.Router) {
		Register(r, &fakeSvc{}, public)
	})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rr
}

func TestGating(t *testing.T) {
	cases := []struct {
		public, loggedIn bool
		path             string
		status           int
	}{
		{false, false, "/experiments", 401},
		{false, true, "/experiments", 200},
		{true, false, "/experiments?page=3", 200},
		{false, false, "/experiments/stats", 401},
		{true, false, "/experiments/stats", 200},
		{true, false, "/experiments/abc", 200},
		{true, false, "/experiments?page=x", 400},
	}
	for _, c := range cases {
		if rr := serve(c.public, c.path, c.loggedIn); rr.Code != c.status {
			t.Fatalf("%+v: status %d body %s", c, rr.Code, rr.Body.String())
		}
	}
}

func TestSearchEnvelopeHasNullAdminContent(t *testing.T) {
	rr := serve(true, "/experiments", false)
	var env struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if v, ok := env.Data["adminContent"]; !ok || string(v) != "null" {
		t.Fatalf("adminContent = %s present=%v", v, ok)
	}
	if string(env.Data["experiments"]) != "[]" {
		t.Fatalf("experiments = %s", env.Data["experiments"])
	}
}
