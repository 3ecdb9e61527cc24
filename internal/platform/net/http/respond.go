// Package http writes every response through the shared envelope and adapts chi to a small Router
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "spacebio/internal/platform/net"
)

// Envelope is the response body shape, see pnet.Envelope
type Envelope = pnet.Envelope

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes the failure envelope for err
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	env := pnet.Failure(err, pnet.RequestID(r.Context()))
	JSON(w, env.StatusCode, env)
}

// Response is what return-style handlers hand back
// Body may be an error, in which case status comes from its code
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a bodiless 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response carrying err
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning func to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		if err, ok := resp.Body.(error); ok && err != nil {
			RespondError(w, r, err)
			return
		}
		switch resp.Status {
		case 0:
			resp.Status = stdhttp.StatusOK
		case stdhttp.StatusNoContent:
			w.WriteHeader(stdhttp.StatusNoContent)
			return
		}
		JSON(w, resp.Status, pnet.Reply(resp.Status, resp.Body, pnet.RequestID(r.Context())))
	}
}
