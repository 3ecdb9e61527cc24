// Package http provides http transport for the experiment catalog
package http

import (
	stdhttp "net/http"

	"spacebio/internal/modkit/httpkit"
	"spacebio/internal/services/api/catalog/domain"
)

// Register mounts the catalog endpoints, behind a login unless public
func Register(r httpkit.Router, s domain.ServicePort, public bool) {
	h := &handlers{svc: s}
	httpkit.Gated(r, public, func(g httpkit.Router) {
		httpkit.Get(g, "/", h.search)
		httpkit.Get(g, "/stats", h.stats)
		httpkit.Get(g, "/{id}", h.get)
	})
}

type handlers struct{ svc domain.ServicePort }

// ParseSearch reads GET /experiments query parameters
// malformed integers fail with a validation error naming the parameter
func ParseSearch(r *stdhttp.Request) (domain.SearchInput, error) {
	var (
		in  domain.SearchInput
		err error
	)
	if in.Page, err = httpkit.QueryInt(r, "page", 1); err != nil {
		return in, err
	}
	if in.Limit, err = httpkit.QueryInt(r, "limit", domain.DefaultLimit); err != nil {
		return in, err
	}
	if in.YearFrom, err = httpkit.QueryIntPtr(r, "yearFrom"); err != nil {
		return in, err
	}
	if in.YearTo, err = httpkit.QueryIntPtr(r, "yearTo"); err != nil {
		return in, err
	}
	in.Category = httpkit.QueryString(r, "category")
	in.Organism = httpkit.QueryString(r, "organism")
	in.Keyword = httpkit.QueryString(r, "keyword")
	return in, nil
}

// @Summary Search the experiment catalog
// @Tags Experiments
// @Produce json
// @Param page query int false "1 based page" default(1)
// @Param limit query int false "page size" default(10)
// @Param category query string false "organism category or all"
// @Param organism query string false "organism or all"
// @Param yearFrom query int false "inclusive lower year"
// @Param yearTo query int false "inclusive upper year"
// @Param keyword query string false "full text keyword"
// @Success 200 {object} domain.SearchResult
// @Failure 400 "invalid filter"
// @Failure 503 "store unavailable"
// @Router /experiments [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	in, err := ParseSearch(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Search(r.Context(), in)
}

// @Summary Catalog counts by category, year and organism
// @Tags Experiments
// @Produce json
// @Success 200 {object} domain.Stats
// @Router /experiments/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}

// @Summary One experiment
// @Tags Experiments
// @Produce json
// @Param id path string true "Experiment id"
// @Success 200 {object} domain.Experiment
// @Router /experiments/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.URLParam(r, "id"))
}
