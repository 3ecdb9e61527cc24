// Package domain holds catalog DTOs and ports
package domain

import anndomain "spacebio/internal/services/api/annotations/domain"

// Listing bounds for GET /experiments
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Experiment is one catalog entry; the catalog is read only at runtime
type Experiment struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Organism              string   `json:"organism"`
	OrganismCategory      string   `json:"organismCategory"`
	Mission               string   `json:"mission"`
	Year                  int      `json:"year"`
	KeyFindings           string   `json:"keyFindings,omitempty"`
	Keywords              []string `json:"keywords"`
	DataLink              string   `json:"dataLink,omitempty"`
	PrincipalInvestigator string   `json:"principalInvestigator,omitempty"`
	Duration              int      `json:"duration,omitempty"`
}

// SearchInput is a parsed GET /experiments query
// "all" or empty category and organism mean unconstrained
type SearchInput struct {
	Category string
	Organism string
	YearFrom *int
	YearTo   *int
	Keyword  string
	Page     int
	Limit    int
}

// SearchResult is one page of matches plus the keyword annotation
type SearchResult struct {
	Experiments  []Experiment          `json:"experiments"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
	Total        int                   `json:"total"`
	AdminContent *anndomain.Annotation `json:"adminContent"`
}

// Bucket is one aggregate group
type Bucket[K string | int] struct {
	ID    K   `json:"_id"`
	Count int `json:"count"`
}

// Stats is the catalog breakdown served by GET /experiments/stats
type Stats struct {
	ByCategory []Bucket[string] `json:"byCategory"`
	ByYear     []Bucket[int]    `json:"byYear"`
	ByOrganism []Bucket[string] `json:"byOrganism"`
}
