// Package httpkit is the routing vocabulary modules use
// modules import it instead of the platform http packages
package httpkit

import (
	"net/http"

	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/net/http/bind"
)

type (
	// Router is what a module registers routes on
	Router = phttp.Router
	// Response lets a handler choose the status, e.g. Created
	Response = phttp.Response
)

// OK wraps data in a 200
func OK(data any) Response { return phttp.OK(data) }

// Created wraps data in a 201
func Created(data any) Response { return phttp.Created(data) }

// NoContent is a bodiless 204
func NoContent() Response { return phttp.NoContent() }

// Get registers a bodiless GET; the result becomes the envelope data
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.GetJSON(r, path, h) }

// Post registers a POST that ignores the body, e.g. logout
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// Delete registers a bodiless DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) { phttp.DeleteJSON(r, path, h) }

// PostJSON registers a POST whose body is decoded and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PutJSON registers a PUT whose body is decoded and validated into T
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, h)
}

// URLParam returns a path parameter
func URLParam(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// QueryString returns a trimmed query parameter, "" when absent
func QueryString(r *http.Request, key string) string { return bind.QueryString(r, key) }

// QueryInt parses an integer query parameter, def when absent
func QueryInt(r *http.Request, key string, def int) (int, error) { return bind.QueryInt(r, key, def) }

// QueryIntPtr parses an optional integer query parameter, nil when absent
func QueryIntPtr(r *http.Request, key string) (*int, error) { return bind.QueryIntPtr(r, key) }
