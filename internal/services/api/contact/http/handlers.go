// Package http provides the contact form endpoint
package http

import (
	stdhttp "net/http"

	"spacebio/internal/modkit/httpkit"
	"spacebio/internal/services/api/contact/domain"
)

// Register mounts the contact route
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/", h.submit)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Message"
// @Success 200 {object} domain.Receipt
// @Failure 400 "invalid input"
// @Router /contact [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Submit(r.Context(), in)
}
