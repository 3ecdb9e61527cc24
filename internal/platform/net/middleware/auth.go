package middleware

import (
	"net/http"

	"spacebio/internal/platform/logger"
	pnet "spacebio/internal/platform/net"
)

// IdentityPort resolves the caller identity from a request, usually from the session cookie
type IdentityPort interface {
	Resolve(r *http.Request) (pnet.Identity, error)
}

// Writer writes a status and body, normally phttp.JSON
type Writer func(w http.ResponseWriter, status int, body any)

// Identity puts the caller identity on the request context and never rejects
// a broken or expired session degrades to anonymous
func Identity(p IdentityPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			id, err := p.Resolve(r)
			if err != nil {
				logger.C(r.Context()).Debug().Err(err).Msg("session unreadable; treating as anonymous")
				id = pnet.Anonymous
			}
			ctx := pnet.WithIdentity(r.Context(), id)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), id.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin rejects anonymous callers with 401
func RequireLogin(write Writer) func(http.Handler) http.Handler {
	return gate(write, func(id pnet.Identity) error {
		if !id.LoggedIn() {
			return errLoginRequired
		}
		return nil
	})
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403
func RequireAdmin(write Writer) func(http.Handler) http.Handler {
	return gate(write, func(id pnet.Identity) error {
		switch {
		case !id.LoggedIn():
			return errLoginRequired
		case !id.IsAdmin():
			return errAdminOnly
		}
		return nil
	})
}

func gate(write Writer, check func(pnet.Identity) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := check(pnet.IdentityFrom(r.Context())); err != nil {
				env := pnet.Failure(err, pnet.RequestID(r.Context()))
				write(w, env.StatusCode, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
