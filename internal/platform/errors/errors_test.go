package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeNetwork, http.StatusBadGateway},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestCodeFromHTTPStatusRoundTrip(t *testing.T) {
	for _, code := range []ErrorCode{
		ErrorCodeNotFound, ErrorCodeDuplicateKey, ErrorCodeValidation, ErrorCodeUnauthorized,
		ErrorCodeForbidden, ErrorCodeTooManyRequests, ErrorCodeUnavailable, ErrorCodeNetwork,
	} {
		if got := CodeFromHTTPStatus(HTTPStatusCode(code)); got != code {
			t.Fatalf("round trip %v got %v", code, got)
		}
	}
	if got := CodeFromHTTPStatus(http.StatusTeapot); got != ErrorCodeUnknown {
		t.Fatalf("teapot got %v", got)
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e4 := Wrapf(src, ErrorCodeForbidden, "nope %s", "here")
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}
	if stderrs.Unwrap(e4) != src {
		t.Fatalf("Wrapf did not keep orig")
	}
	got, ok := As(e4)
	if !ok || got.Code() != ErrorCodeForbidden || got.Message() != "nope here" {
		t.Fatalf("As() = %+v %v", got, ok)
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	e6 := WithOp(WithField(e4, "email"), "login")
	ee, _ := As(e6)
	if ee.Field() != "email" || ee.Op() != "login" {
		t.Fatalf("field/op not applied: %+v", ee)
	}
	if orig, _ := As(e4); orig.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}
	if WithField(src, "x") != src {
		t.Fatalf("WithField on foreign error should pass through")
	}
}

func TestValidationfCarriesField(t *testing.T) {
	err := Validationf("yearFrom", "yearFrom must be an integer")
	w := WireFrom(err)
	if w.Code != ErrorCodeValidation || w.Field != "yearFrom" {
		t.Fatalf("unexpected wire %+v", w)
	}
	if HTTPStatus(err) != http.StatusBadRequest {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{Unavailablef("db down"), true},
		{Networkf(stderrs.New("dial"), "fetch failed"), true},
		{NotFoundf("missing"), false},
		{fmt.Errorf("wrapped: %w", Unavailablef("x")), true},
		{stderrs.New("plain"), false},
		{nil, false},
	}
	for i, c := range cases {
		if got := IsTransient(c.err); got != c.want {
			t.Fatalf("case %d IsTransient = %v want %v", i, got, c.want)
		}
	}
}

func TestWireFromAndHTTP(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
	st, w := HTTP(DuplicateKeyf("keyword %q already exists", "mars"))
	if st != http.StatusConflict || w.Code != ErrorCodeDuplicateKey {
		t.Fatalf("HTTP() = %d %+v", st, w)
	}
	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", st)
	}
}

func TestCodeString(t *testing.T) {
	if ErrorCodeDuplicateKey.String() != "duplicate_key" {
		t.Fatalf("got %q", ErrorCodeDuplicateKey.String())
	}
	if ErrorCode(999).String() != "code_999" {
		t.Fatalf("got %q", ErrorCode(999).String())
	}
}
