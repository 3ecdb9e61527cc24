// Package testkit holds small assertions and seams shared by package tests
package testkit

import (
	"encoding/json"
	"sync"
	"testing"
)

// MustPanic fails the test unless fn panics and returns the recovered value
func MustPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustNotPanic fails the test if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// Envelope mirrors the API response wrapper with a typed data member
type Envelope[T any] struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Code       int    `json:"code"`
	Error      string `json:"error"`
	Field      string `json:"field"`
	RequestID  string `json:"request_id"`
	Data       T      `json:"data"`
}

// DecodeEnvelope parses a response body or fails the test with the raw payload
func DecodeEnvelope[T any](t *testing.T, body []byte) Envelope[T] {
	t.Helper()
	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, body)
	}
	return env
}

var seamMu sync.Mutex

// Swap replaces a package-level variable until the test ends
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process-wide lock for the rest of the test so seam swaps cannot interleave
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
