package httpkit

import (
	"net/http"

	perr "spacebio/internal/platform/errors"
	pnet "spacebio/internal/platform/net"
)

// Identity returns the caller identity resolved by the session middleware
func Identity(r *http.Request) pnet.Identity { return pnet.IdentityFrom(r.Context()) }

// User returns the caller identity or Unauthorized for anonymous callers
func User(r *http.Request) (pnet.Identity, error) {
	id := Identity(r)
	if !id.LoggedIn() {
		return id, perr.Unauthorizedf("login required")
	}
	return id, nil
}
