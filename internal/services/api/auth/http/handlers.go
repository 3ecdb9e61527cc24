// Package http provides the session gate endpoints
package http

import (
	"net"
	stdhttp "net/http"

	"spacebio/internal/modkit/httpkit"
	pnet "spacebio/internal/platform/net"
	"spacebio/internal/services/api/auth/domain"
)

// Sessions persists and clears the session cookie
type Sessions interface {
	Save(w stdhttp.ResponseWriter, r *stdhttp.Request, id pnet.Identity) error
	Clear(w stdhttp.ResponseWriter, r *stdhttp.Request) error
}

// Register mounts the auth routes
func Register(r httpkit.Router, s domain.ServicePort, sess Sessions) {
	h := &handlers{svc: s, sess: sess}

	httpkit.PostJSON(r, "/register", h.register)
	httpkit.PostJSON(r, "/login", h.login)
	httpkit.Get(r, "/check", h.check)
	httpkit.Post(r, "/logout", h.logout)
}

type handlers struct {
	svc  domain.ServicePort
	sess Sessions
}

// clientKey is the remote host; RealIP has already applied proxy headers
func clientKey(r *stdhttp.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (h *handlers) startSession(r *stdhttp.Request, resp httpkit.Response, u domain.User) (any, error) {
	return httpkit.Headers(resp, func(w stdhttp.ResponseWriter) error {
		return h.sess.Save(w, r, u.Identity())
	})
}

// @Summary Create a user account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.RegisterInput true "Account"
// @Success 201 {object} domain.User
// @Failure 409 "username or email taken"
// @Router /auth/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	u, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return h.startSession(r, httpkit.Created(u), u)
}

// @Summary Start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.User
// @Failure 401 "invalid credentials"
// @Failure 429 "too many attempts"
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	u, err := h.svc.Login(r.Context(), clientKey(r), in)
	if err != nil {
		return nil, err
	}
	return h.startSession(r, httpkit.OK(u), u)
}

// @Summary Session state
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.CheckResult
// @Router /auth/check [get]
func (h *handlers) check(r *stdhttp.Request) (any, error) {
	return h.svc.Check(r.Context(), httpkit.Identity(r)), nil
}

// @Summary End the session
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	return httpkit.Headers(httpkit.NoContent(), func(w stdhttp.ResponseWriter) error {
		return h.sess.Clear(w, r)
	})
}
