// Package net provides request context helpers shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Role is the caller role projected from a session
type Role string

const (
	// RoleAnonymous is any caller without a session
	RoleAnonymous Role = "anonymous"
	// RoleUser is a logged in caller
	RoleUser Role = "user"
	// RoleAdmin may manage annotations
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAnonymous, RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Identity is the {role, id} projection services depend on
// Username and Email are display only and may be empty
type Identity struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Anonymous is the identity of a caller without a session
var Anonymous = Identity{Role: RoleAnonymous}

// LoggedIn reports whether the identity belongs to a session user
func (i Identity) LoggedIn() bool { return i.ID != "" && i.Role != RoleAnonymous && i.Role != "" }

// IsAdmin reports whether the identity may use admin operations
func (i Identity) IsAdmin() bool { return i.LoggedIn() && i.Role == RoleAdmin }

// ctxKey is an unexported key type for context values
type ctxKey string

const keyIdentity ctxKey = "identity"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithIdentity stores the caller identity on the context
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, keyIdentity, id)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// IdentityFrom returns the caller identity, Anonymous when none was resolved
func IdentityFrom(ctx context.Context) Identity {
	if v, ok := ctx.Value(keyIdentity).(Identity); ok {
		return v
	}
	return Anonymous
}

// UserID returns the session user id on the context if present
func UserID(ctx context.Context) string { return IdentityFrom(ctx).ID }
