// Package http provides http transport for annotations
package http

import (
	stdhttp "net/http"

	"spacebio/internal/modkit/httpkit"
	"spacebio/internal/services/api/annotations/domain"
)

// Register mounts annotation endpoints; writes and the full list are admin only
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/search/{keyword}", h.lookup)

	httpkit.Admin(r, func(a httpkit.Router) {
		httpkit.Get(a, "/", h.list)
		httpkit.PostJSON(a, "/", h.create)
		httpkit.PutJSON(a, "/{id}", h.update)
		httpkit.Delete(a, "/{id}", h.delete)
	})
}

type handlers struct{ svc domain.ServicePort }

// @Summary Active annotation for a keyword
// @Tags Annotations
// @Produce json
// @Param keyword path string true "Keyword"
// @Success 200 {object} domain.Annotation "data is null when nothing matches"
// @Router /annotations/search/{keyword} [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	a, err := h.svc.Lookup(r.Context(), httpkit.URLParam(r, "keyword"))
	if err != nil || a == nil {
		return nil, err
	}
	return a, nil
}

// @Summary All annotations, newest first (admin)
// @Tags Annotations
// @Produce json
// @Success 200 {array} domain.Annotation
// @Router /annotations [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.Identity(r))
}

// @Summary Create an annotation (admin)
// @Tags Annotations
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Annotation"
// @Success 201 {object} domain.Annotation
// @Failure 409 "keyword already annotated"
// @Router /annotations [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	a, err := h.svc.Create(r.Context(), httpkit.Identity(r), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(a), nil
}

// @Summary Update an annotation (admin)
// @Tags Annotations
// @Accept json
// @Produce json
// @Param id path string true "Annotation id"
// @Param payload body domain.UpdateInput true "Fields to change"
// @Success 200 {object} domain.Annotation
// @Router /annotations/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.Identity(r), httpkit.URLParam(r, "id"), in)
}

// @Summary Delete an annotation (admin)
// @Tags Annotations
// @Param id path string true "Annotation id"
// @Success 204
// @Router /annotations/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.Identity(r), httpkit.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
