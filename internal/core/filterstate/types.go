package filterstate

import (
	"context"
	"time"
)

// PageSize is the listing page size the dashboard always requests
const PageSize = 9

// State is the controller lifecycle state
type State int

// Controller states
const (
	Idle State = iota
	Loading
	Loaded
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	}
	return "unknown"
}

// Field names a settable filter
type Field string

// Filter fields, named like the query parameters
const (
	FieldCategory Field = "category"
	FieldOrganism Field = "organism"
	FieldYearFrom Field = "yearFrom"
	FieldYearTo   Field = "yearTo"
)

// Filters is the structured part of a query; nil years mean unbounded
type Filters struct {
	Category string
	Organism string
	YearFrom *int
	YearTo   *int
}

// Query is what the controller hands to the Resolver
type Query struct {
	Filters
	Keyword  string
	Page     int
	PageSize int
}

// Experiment is the catalog row as the dashboard shows it
type Experiment struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Organism              string   `json:"organism"`
	OrganismCategory      string   `json:"organismCategory"`
	Mission               string   `json:"mission"`
	Year                  int      `json:"year"`
	KeyFindings           string   `json:"keyFindings,omitempty"`
	Keywords              []string `json:"keywords,omitempty"`
	DataLink              string   `json:"dataLink,omitempty"`
	PrincipalInvestigator string   `json:"principalInvestigator,omitempty"`
	Duration              int      `json:"duration,omitempty"`
}

// Annotation is the admin content shown next to a keyword search
type Annotation struct {
	ID        string    `json:"id"`
	Keyword   string    `json:"keyword"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedBy string    `json:"createdBy"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Result is one resolved page
type Result struct {
	Experiments  []Experiment `json:"experiments"`
	TotalPages   int          `json:"totalPages"`
	CurrentPage  int          `json:"currentPage"`
	Total        int          `json:"total"`
	AdminContent *Annotation  `json:"adminContent"`
}

// Resolver runs a catalog query
type Resolver interface {
	Search(ctx context.Context, q Query) (Result, error)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(ctx context.Context, q Query) (Result, error)

// Search calls f
func (f ResolverFunc) Search(ctx context.Context, q Query) (Result, error) { return f(ctx, q) }

// Snapshot is a copy of the controller state
type Snapshot struct {
	State   State
	Filters Filters
	Keyword string
	Page    int

	// Result is the last successful page; after a failure it is stale but still shown
	Result    Result
	HasResult bool

	Err       error
	Retryable bool

	OrganismOptions []string
}
