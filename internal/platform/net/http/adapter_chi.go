package http

import (
	"net/http"

	perr "spacebio/internal/platform/errors"
	pnet "spacebio/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts any chi.Router, root mux or sub router, to Router
type chiRouter struct{ r chi.Router }

// AdaptChi adapts a *chi.Mux to a Router
// unmatched paths and methods answer with the JSON envelope instead of chi's text bodies
func AdaptChi(m *chi.Mux) Router {
	m.NotFound(notFound)
	m.MethodNotAllowed(methodNotAllowed)
	return chiRouter{r: m}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	RespondError(w, r, perr.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
}

// perr has no 405 code so only the message is filled in
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	env := pnet.Reply(http.StatusMethodNotAllowed, nil, pnet.RequestID(r.Context()))
	env.Error = r.Method + " is not allowed on " + r.URL.Path
	JSON(w, env.StatusCode, env)
}

func (c chiRouter) Get(p string, h Handler)    { c.r.Method(http.MethodGet, p, http.HandlerFunc(h)) }
func (c chiRouter) Post(p string, h Handler)   { c.r.Method(http.MethodPost, p, http.HandlerFunc(h)) }
func (c chiRouter) Put(p string, h Handler)    { c.r.Method(http.MethodPut, p, http.HandlerFunc(h)) }
func (c chiRouter) Delete(p string, h Handler) { c.r.Method(http.MethodDelete, p, http.HandlerFunc(h)) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }

// URLParam returns a path parameter captured by the chi pattern, "" when absent
func URLParam(r *http.Request, key string) string { return chi.URLParam(r, key) }
