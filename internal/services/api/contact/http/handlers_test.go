package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spacebio/internal/modkit/httpkit"
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/services/api/contact/domain"
	"spacebio/internal/services/api/contact/service"

	"github.com/go-chi/chi/v5"
)

func TestSubmit(t *testing.T) {
	mux := chi.NewRouter()
	httpkit.MountUnder(phttp.AdaptChi(mux), "/contact", nil, func(r httpkit.Router) { Register(r, service.New()) })

	cases := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"ok", `{"name":"Sam","email":"sam@example.org","subject":"Hi","message":"Data please"}`, 200, ""},
		{"bad email", `{"name":"Sam","email":"sam","subject":"Hi","message":"x"}`, 400, "email"},
		{"blank name", `{"name":"  ","email":"sam@example.org","subject":"Hi","message":"x"}`, 400, "name"},
		{"missing message", `{"name":"Sam","email":"sam@example.org","subject":"Hi"}`, 400, "message"},
		{"unknown field", `{"name":"Sam","email":"sam@example.org","subject":"Hi","message":"x","cc":"y"}`, 400, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(stdhttp.MethodPost, "/contact/", strings.NewReader(c.body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			if rr.Code != c.status {
				t.Fatalf("status %d want %d: %s", rr.Code, c.status, rr.Body.String())
			}
			var env struct {
				Field string         `json:"field"`
				Data  domain.Receipt `json:"data"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
				t.Fatal(err)
			}
			if c.status == 200 && (!env.Data.Success || env.Data.SubmissionID == "") {
				t.Fatalf("receipt = %+v", env.Data)
			}
			if c.field != "" && env.Field != c.field {
				t.Fatalf("field = %q want %q", env.Field, c.field)
			}
		})
	}
}
