// Package bind turns request bodies and query strings into validated inputs
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	perr "spacebio/internal/platform/errors"
)

const defaultMaxBody = 1 << 20

// JSONOptions tunes ParseJSON; the zero value is strict with a 1MB cap
type JSONOptions struct {
	MaxBytes     int64
	AllowUnknown bool
	AllowEmpty   bool
}

// ParseJSON decodes exactly one JSON value into T and validates it
// an empty body is an error unless the method carries no body by convention or AllowEmpty is set
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var o JSONOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBody
	}

	var dst T
	if r.Body == nil {
		r.Body = http.NoBody
	}
	body := bufio.NewReader(http.MaxBytesReader(nil, r.Body, o.MaxBytes))
	if _, err := body.Peek(1); errors.Is(err, io.EOF) {
		if o.AllowEmpty || bodyless(r.Method) {
			return dst, nil
		}
		return dst, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(body)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var zero T
		return zero, decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var zero T
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Default().Check(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func bodyless(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func decodeError(err error) error {
	var (
		tooBig *http.MaxBytesError
		syn    *json.SyntaxError
		typ    *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &tooBig):
		return perr.JSONErrf("request body exceeds %d bytes", tooBig.Limit)
	case errors.As(err, &syn):
		return perr.JSONErrf("malformed JSON at offset %d", syn.Offset)
	case errors.As(err, &typ):
		return perr.WithField(perr.JSONErrf("%s must be a %s", typ.Field, typ.Type), typ.Field)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return perr.JSONErrf("truncated JSON")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return perr.WithField(perr.JSONErrf("unknown field %q", field), field)
	}
	return perr.JSONErrf("invalid JSON: %v", err)
}
