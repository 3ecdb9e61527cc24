// Package domain holds account types and the user store port
package domain

import (
	"context"

	pnet "spacebio/internal/platform/net"
)

// User is the public view of an account; the password hash never leaves the repo layer
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     pnet.Role `json:"role"`
}

// Identity projects u into the session identity
func (u User) Identity() pnet.Identity {
	return pnet.Identity{ID: u.ID, Role: u.Role, Username: u.Username, Email: u.Email}
}

// Account is a user together with its bcrypt hash
type Account struct {
	User
	PasswordHash []byte
}

// RegisterInput is the body of POST /auth/register
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum" example:"astrosam"`
	Email    string `json:"email"    validate:"required,email,max=254" example:"sam@example.org"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput is the body of POST /auth/login
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// CheckResult reports the session state; it is always a 200
type CheckResult struct {
	LoggedIn bool  `json:"loggedIn"`
	User     *User `json:"user,omitempty"`
	IsAdmin  bool  `json:"isAdmin"`
}

// UserStore persists accounts
type UserStore interface {
	// Create inserts a unless the username or email is taken; ok is false when taken
	Create(ctx context.Context, a Account) (u User, ok bool, err error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// ServicePort is the session gate use case surface
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (User, error)
	Login(ctx context.Context, clientKey string, in LoginInput) (User, error)
	EnsureAdmin(ctx context.Context, username, email, password string) (User, error)
	Check(ctx context.Context, id pnet.Identity) CheckResult
}
