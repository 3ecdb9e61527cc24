// Package service implements registration, login and the admin bootstrap
package service

import (
	"context"
	"strings"

	"spacebio/internal/modkit/repokit"
	perr "spacebio/internal/platform/errors"
	"spacebio/internal/platform/logger"
	"spacebio/internal/platform/metrics"
	pnet "spacebio/internal/platform/net"
	"spacebio/internal/services/api/auth/domain"

	"golang.org/x/crypto/bcrypt"
)

// Service defines the auth service contract
type Service interface {
	domain.ServicePort
}

// Options tune the auth service
type Options struct {
	// LoginRPS is the sustained login rate per client, 0 disables limiting
	LoginRPS   float64
	LoginBurst int
	// Cost is the bcrypt cost, bcrypt.DefaultCost when zero
	Cost    int
	Metrics *metrics.Metrics
}

// Svc implements the auth service
type Svc struct {
	Users   domain.UserStore
	cost    int
	limit   *limiter
	metrics *metrics.Metrics
	// dummy is compared against when the email is unknown so both paths cost one bcrypt
	dummy []byte
}

// New constructs an auth service
func New(db repokit.TxRunner, binder repokit.Binder[domain.UserStore], o Options) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil UserStore binder")
	}
	if o.Cost == 0 {
		o.Cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), o.Cost)
	if err != nil {
		panic("auth: " + err.Error())
	}
	return &Svc{
		Users:   binder.Bind(db),
		cost:    o.Cost,
		limit:   newLimiter(o.LoginRPS, o.LoginBurst),
		metrics: o.Metrics,
		dummy:   dummy,
	}
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// Register creates a user account; registration never grants admin
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	return s.create(ctx, in.Username, in.Email, in.Password, pnet.RoleUser)
}

func (s *Svc) create(ctx context.Context, username, email, password string, role pnet.Role) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, perr.Validationf("password", "password cannot be hashed: %v", err)
	}
	u, ok, err := s.Users.Create(ctx, domain.Account{
		User:         domain.User{Username: strings.TrimSpace(username), Email: normEmail(email), Role: role},
		PasswordHash: hash,
	})
	if perr.IsDuplicateKey(err) || (err == nil && !ok) {
		return domain.User{}, perr.DuplicateKeyf("username or email already registered")
	}
	if err != nil {
		return domain.User{}, perr.FromStore(err, "create user")
	}
	logger.C(ctx).Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("user registered")
	return u, nil
}

// Login checks credentials; clientKey scopes the rate limit, usually the remote IP
func (s *Svc) Login(ctx context.Context, clientKey string, in domain.LoginInput) (domain.User, error) {
	if !s.limit.Allow(clientKey) {
		s.metrics.ObserveLogin("limited")
		return domain.User{}, perr.TooManyRequestsf("too many login attempts, slow down")
	}
	a, err := s.Users.FindByEmail(ctx, normEmail(in.Email))
	if err != nil {
		s.metrics.ObserveLogin("error")
		return domain.User{}, perr.FromStore(err, "find user")
	}
	hash := s.dummy
	if a != nil {
		hash = a.PasswordHash
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(in.Password)) != nil || a == nil {
		s.metrics.ObserveLogin("invalid")
		logger.C(ctx).Info().Str("client", clientKey).Msg("login rejected")
		return domain.User{}, perr.Unauthorizedf("invalid credentials")
	}
	s.metrics.ObserveLogin("ok")
	return a.User, nil
}

// EnsureAdmin creates the bootstrap admin unless the username or email exists
// an existing account is returned unchanged
func (s *Svc) EnsureAdmin(ctx context.Context, username, email, password string) (domain.User, error) {
	if a, err := s.Users.FindByEmail(ctx, normEmail(email)); err != nil {
		return domain.User{}, perr.FromStore(err, "find admin")
	} else if a != nil {
		if a.Role != pnet.RoleAdmin {
			logger.C(ctx).Warn().Str("user_id", a.ID).Msg("bootstrap admin email belongs to a non admin account")
		}
		return a.User, nil
	}
	return s.create(ctx, username, email, password, pnet.RoleAdmin)
}

// Check projects a session identity, refreshed from the store when it answers
// a session whose user was deleted reads as logged out; a store failure falls back to the cookie
func (s *Svc) Check(ctx context.Context, id pnet.Identity) domain.CheckResult {
	if !id.LoggedIn() {
		return domain.CheckResult{}
	}
	u := domain.User{ID: id.ID, Username: id.Username, Email: id.Email, Role: id.Role}
	cur, err := s.Users.FindByID(ctx, id.ID)
	switch {
	case err != nil:
		logger.C(ctx).Warn().Err(err).Msg("session check fell back to cookie identity")
	case cur == nil:
		return domain.CheckResult{}
	default:
		u = *cur
	}
	return domain.CheckResult{LoggedIn: true, User: &u, IsAdmin: u.Role == pnet.RoleAdmin}
}
