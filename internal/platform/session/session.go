// Package session keeps the caller identity in a signed, encrypted cookie
package session

import (
	"crypto/sha256"
	"net/http"
	"strings"
	"time"

	"spacebio/internal/platform/config"
	perr "spacebio/internal/platform/errors"
	pnet "spacebio/internal/platform/net"

	"github.com/gorilla/sessions"
)

// Name is the session cookie name
const Name = "spacebio_session"

const (
	keyUserID   = "uid"
	keyRole     = "role"
	keyUsername = "username"
	keyEmail    = "email"
)

// Options configures the cookie store
type Options struct {
	Secret []byte
	Secure bool
	MaxAge time.Duration
	// SameSite defaults to Lax
	SameSite http.SameSite
}

var sameSite = map[string]http.SameSite{
	"lax":    http.SameSiteLaxMode,
	"strict": http.SameSiteStrictMode,
	"none":   http.SameSiteNoneMode,
}

// OptionsFrom reads SESSION_SECRET (required, >= 32 bytes), SESSION_SECURE, SESSION_MAX_AGE and SESSION_SAMESITE
func OptionsFrom(cfg config.Conf) Options {
	ss := cfg.MayEnum("SESSION_SAMESITE", "lax", "lax", "strict", "none")
	return Options{
		Secret:   cfg.MustSecret("SESSION_SECRET", 32),
		Secure:   cfg.MayBool("SESSION_SECURE", false),
		MaxAge:   cfg.MayDuration("SESSION_MAX_AGE", 24*time.Hour),
		SameSite: sameSite[strings.ToLower(ss)],
	}
}

// Store resolves and persists identities through a gorilla CookieStore
type Store struct {
	cookies *sessions.CookieStore
}

// New builds a Store; the auth and encryption keys are derived from the secret
func New(o Options) *Store {
	if o.MaxAge <= 0 {
		o.MaxAge = 24 * time.Hour
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	cs := sessions.NewCookieStore(deriveKey(o.Secret, "auth"), deriveKey(o.Secret, "enc"))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(o.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
	return &Store{cookies: cs}
}

func deriveKey(secret []byte, purpose string) []byte {
	h := sha256.New()
	h.Write(secret)
	h.Write([]byte(purpose))
	return h.Sum(nil)
}

// Resolve projects the session cookie into an Identity
// a missing cookie is Anonymous with no error; a tampered or expired one returns an error
func (s *Store) Resolve(r *http.Request) (pnet.Identity, error) {
	if _, err := r.Cookie(Name); err != nil {
		return pnet.Anonymous, nil
	}
	sess, err := s.cookies.Get(r, Name)
	if err != nil {
		return pnet.Anonymous, perr.Wrap(err, perr.ErrorCodeUnauthorized, "session cookie rejected")
	}
	id, _ := sess.Values[keyUserID].(string)
	role, _ := sess.Values[keyRole].(string)
	if id == "" || !pnet.Role(role).Valid() || pnet.Role(role) == pnet.RoleAnonymous {
		return pnet.Anonymous, nil
	}
	username, _ := sess.Values[keyUsername].(string)
	email, _ := sess.Values[keyEmail].(string)
	return pnet.Identity{ID: id, Role: pnet.Role(role), Username: username, Email: email}, nil
}

// Save writes id into a fresh session cookie
func (s *Store) Save(w http.ResponseWriter, r *http.Request, id pnet.Identity) error {
	if !id.LoggedIn() {
		return perr.InvalidArgf("cannot persist an anonymous session")
	}
	// a stale or tampered cookie still yields a usable new session
	sess, _ := s.cookies.New(r, Name)
	sess.Values[keyUserID] = id.ID
	sess.Values[keyRole] = string(id.Role)
	sess.Values[keyUsername] = id.Username
	sess.Values[keyEmail] = id.Email
	if err := sess.Save(r, w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "save session")
	}
	return nil
}

// Clear expires the session cookie
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.New(r, Name)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "clear session")
	}
	return nil
}
