// Package filterstate implements the dashboard filter state machine
//
// Filters are edited in a draft and only reach the Resolver through an explicit
// action (apply, search, page, reset). Every request takes a sequence number and
// only the response of the newest request is applied.
package filterstate

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"spacebio/internal/core/taxonomy"
	perr "spacebio/internal/platform/errors"
)

// ErrSuperseded is returned to a caller whose response arrived after a newer request was issued
var ErrSuperseded = perr.New(perr.ErrorCodeConflict, "superseded by a newer request")

// Option configures a Controller
type Option func(*Controller)

// WithObserver registers fn to receive a Snapshot after every applied transition
// fn runs outside the controller lock and must not block for long
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithPageSize overrides PageSize
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// Controller owns one dashboard's filter set, page and last result
type Controller struct {
	res      Resolver
	pageSize int
	onChange func(Snapshot)

	mu      sync.Mutex
	draft   Filters
	applied Filters
	keyword string
	page    int
	state   State
	seq     uint64

	last      Result
	hasResult bool
	err       error
}

// New returns an Idle controller with default filters
func New(res Resolver, opts ...Option) *Controller {
	c := &Controller{
		res:      res,
		pageSize: PageSize,
		draft:    DefaultFilters(),
		applied:  DefaultFilters(),
		page:     1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// DefaultFilters is the reset state: every constraint off
func DefaultFilters() Filters {
	return Filters{Category: taxonomy.All, Organism: taxonomy.All}
}

// SetFilter edits the draft filter set without issuing a request
// a category change resets organism to all; an empty year clears that bound
func (c *Controller) SetFilter(field Field, value string) error {
	value = strings.TrimSpace(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldCategory:
		if !taxonomy.ValidCategory(value) {
			return perr.Validationf(string(field), "unknown category %q", value)
		}
		if taxonomy.IsAll(value) {
			value = taxonomy.All
		}
		if value != c.draft.Category {
			c.draft.Organism = taxonomy.All
		}
		c.draft.Category = value
	case FieldOrganism:
		if taxonomy.IsAll(value) {
			c.draft.Organism = taxonomy.All
			return nil
		}
		if !slices.Contains(taxonomy.OrganismsFor(c.draft.Category), value) {
			return perr.Validationf(string(field), "organism %q is not an option for category %s", value, c.draft.Category)
		}
		c.draft.Organism = value
	case FieldYearFrom, FieldYearTo:
		y, err := parseYear(field, value)
		if err != nil {
			return err
		}
		if field == FieldYearFrom {
			c.draft.YearFrom = y
		} else {
			c.draft.YearTo = y
		}
	default:
		return perr.Validationf(string(field), "unknown filter %q", field)
	}
	return nil
}

func parseYear(field Field, v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, perr.Validationf(string(field), "%s must be an integer", field)
	}
	return &n, nil
}

// OrganismOptions is "all" followed by the organisms valid for the draft category
func (c *Controller) OrganismOptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return organismOptions(c.draft.Category)
}

func organismOptions(category string) []string {
	return append([]string{taxonomy.All}, taxonomy.OrganismsFor(category)...)
}

// Load issues the current query unchanged; it is also the manual retry
func (c *Controller) Load(ctx context.Context) error {
	return c.issue(ctx, func() bool { return true })
}

// ApplyFilters applies the draft, clears the keyword and loads page 1
func (c *Controller) ApplyFilters(ctx context.Context) error {
	return c.issue(ctx, func() bool {
		c.applied = c.draft
		c.keyword = ""
		c.page = 1
		return true
	})
}

// Search applies the draft with term as keyword and loads page 1
// a blank term is the same as no keyword
func (c *Controller) Search(ctx context.Context, term string) error {
	return c.issue(ctx, func() bool {
		c.applied = c.draft
		c.keyword = strings.TrimSpace(term)
		c.page = 1
		return true
	})
}

// NextPage loads the following page; a no-op on the last known page
// a failed move stays on the page being shown
func (c *Controller) NextPage(ctx context.Context) error {
	return c.move(ctx, func() bool { return c.page < c.last.TotalPages }, 1)
}

// PreviousPage loads the preceding page; a no-op on page 1
// a failed move stays on the page being shown
func (c *Controller) PreviousPage(ctx context.Context) error {
	return c.move(ctx, func() bool { return c.page > 1 }, -1)
}

func (c *Controller) move(ctx context.Context, can func() bool, delta int) error {
	var from int
	return c.issueUndo(ctx, func() bool {
		if !can() {
			return false
		}
		from = c.page
		c.page += delta
		return true
	}, func() { c.page = from })
}

// ResetFilters restores defaults, clears the keyword and loads page 1
func (c *Controller) ResetFilters(ctx context.Context) error {
	return c.issue(ctx, func() bool {
		c.draft = DefaultFilters()
		c.applied = c.draft
		c.keyword = ""
		c.page = 1
		return true
	})
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// issue applies mutate under the lock and, when it returns true, runs the query
// a response is applied only if no newer request was issued meanwhile
func (c *Controller) issue(ctx context.Context, mutate func() bool) error {
	return c.issueUndo(ctx, mutate, nil)
}

// issueUndo is issue with undo run under the lock when the current request fails
func (c *Controller) issueUndo(ctx context.Context, mutate func() bool, undo func()) error {
	c.mu.Lock()
	if !mutate() {
		c.mu.Unlock()
		return nil
	}
	c.seq++
	seq := c.seq
	q := Query{Filters: c.applied, Keyword: c.keyword, Page: c.page, PageSize: c.pageSize}
	c.state = Loading
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	res, err := c.res.Search(ctx, q)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.state = Error
		c.err = err
		if undo != nil {
			undo()
		}
	} else {
		c.state = Loaded
		c.err = nil
		c.last = res
		c.hasResult = true
	}
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return err
}

func (c *Controller) notify(s Snapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:           c.state,
		Filters:         cloneFilters(c.applied),
		Keyword:         c.keyword,
		Page:            c.page,
		Result:          c.last,
		HasResult:       c.hasResult,
		Err:             c.err,
		Retryable:       perr.IsTransient(c.err),
		OrganismOptions: organismOptions(c.draft.Category),
	}
}

func cloneFilters(f Filters) Filters {
	if f.YearFrom != nil {
		y := *f.YearFrom
		f.YearFrom = &y
	}
	if f.YearTo != nil {
		y := *f.YearTo
		f.YearTo = &y
	}
	return f
}
