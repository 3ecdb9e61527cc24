package filterstate

import (
	"context"
	stderrs "errors"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"spacebio/internal/core/taxonomy"
	perr "spacebio/internal/platform/errors"
)

func TestMain(m *testing.M) { goleak.VerifyTestMain(m) }

type recorder struct {
	mu      sync.Mutex
	queries []Query
	result  func(q Query) (Result, error)
}

func (r *recorder) Search(_ context.Context, q Query) (Result, error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	if r.result != nil {
		return r.result(q)
	}
	return Result{TotalPages: 3, CurrentPage: q.Page, Total: 25}, nil
}

func (r *recorder) last() Query {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries[len(r.queries)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

func TestSetFilterIsLocal(t *testing.T) {
	r := &recorder{}
	c := New(r)
	if err := c.SetFilter(FieldCategory, "Plant"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if r.count() != 0 {
		t.Fatalf("SetFilter must not issue a request")
	}
	if s := c.Snapshot(); s.State != Idle || s.Filters.Category != taxonomy.All {
		t.Fatalf("applied filters changed before apply: %+v", s)
	}
}

func TestCategoryChangeResetsOrganism(t *testing.T) {
	c := New(&recorder{})
	if err := c.SetFilter(FieldCategory, "Plant"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFilter(FieldOrganism, "Rice"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFilter(FieldCategory, "Plant"); err != nil {
		t.Fatal(err)
	}
	if err := c.ApplyFilters(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := c.Snapshot().Filters.Organism; got != "Rice" {
		t.Fatalf("same category should keep organism, got %q", got)
	}

	if err := c.SetFilter(FieldCategory, "Mammal"); err != nil {
		t.Fatal(err)
	}
	if err := c.ApplyFilters(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := c.Snapshot().Filters.Organism; got != taxonomy.All {
		t.Fatalf("organism = %q want all", got)
	}
}

func TestOrganismOptions(t *testing.T) {
	c := New(&recorder{})
	all := c.OrganismOptions()
	if all[0] != taxonomy.All || len(all) != len(taxonomy.FilterableOrganisms())+1 {
		t.Fatalf("unexpected options for all: %v", all)
	}
	_ = c.SetFilter(FieldCategory, "Insect")
	got := c.OrganismOptions()
	if len(got) != 3 || got[1] != "Drosophila" || got[2] != "Bee" {
		t.Fatalf("insect options = %v", got)
	}
	if err := c.SetFilter(FieldOrganism, "Mouse"); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("mouse under insect should be rejected, got %v", err)
	}

	for _, cat := range []string{"Fish", "Other"} {
		_ = c.SetFilter(FieldCategory, cat)
		if got := c.OrganismOptions(); len(got) != 1 || got[0] != taxonomy.All {
			t.Fatalf("%s options = %v", cat, got)
		}
		if err := c.SetFilter(FieldOrganism, "Mouse"); !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("mouse under %s should be rejected, got %v", cat, err)
		}
		if err := c.SetFilter(FieldOrganism, "all"); err != nil {
			t.Fatalf("all under %s: %v", cat, err)
		}
	}
}

func TestSetFilterValidation(t *testing.T) {
	cases := []struct {
		field Field
		value string
		ok    bool
	}{
		{FieldCategory, "Plant", true},
		{FieldCategory, "plant", false},
		{FieldCategory, "", true},
		{FieldOrganism, "all", true},
		{FieldOrganism, "Yeast", true},
		{FieldOrganism, "Dog", false},
		{FieldYearFrom, "2015", true},
		{FieldYearFrom, "", true},
		{FieldYearTo, "20x5", false},
		{Field("mission"), "ISS", false},
	}
	for _, tc := range cases {
		c := New(&recorder{})
		err := c.SetFilter(tc.field, tc.value)
		if tc.ok && err != nil {
			t.Fatalf("%s=%q: unexpected error %v", tc.field, tc.value, err)
		}
		if !tc.ok {
			w := perr.WireFrom(err)
			if w.Code != perr.ErrorCodeValidation || w.Field == "" {
				t.Fatalf("%s=%q: want validation error with field, got %+v", tc.field, tc.value, w)
			}
		}
	}
}

func TestApplyAndSearchQueries(t *testing.T) {
	r := &recorder{}
	c := New(r)
	ctx := context.Background()

	_ = c.SetFilter(FieldYearFrom, "2010")
	_ = c.SetFilter(FieldYearTo, "2020")
	if err := c.Search(ctx, "  bone  "); err != nil {
		t.Fatal(err)
	}
	q := r.last()
	if q.Keyword != "bone" || q.Page != 1 || q.PageSize != PageSize {
		t.Fatalf("search query = %+v", q)
	}
	if q.YearFrom == nil || *q.YearFrom != 2010 || q.YearTo == nil || *q.YearTo != 2020 {
		t.Fatalf("years not applied: %+v", q.Filters)
	}

	if err := c.ApplyFilters(ctx); err != nil {
		t.Fatal(err)
	}
	if r.last().Keyword != "" {
		t.Fatalf("apply should clear keyword")
	}

	if err := c.ResetFilters(ctx); err != nil {
		t.Fatal(err)
	}
	q = r.last()
	if q.Filters.Category != taxonomy.All || q.YearFrom != nil || q.YearTo != nil {
		t.Fatalf("reset query = %+v", q)
	}
}

func TestPaging(t *testing.T) {
	r := &recorder{}
	c := New(r)
	ctx := context.Background()

	if err := c.PreviousPage(ctx); err != nil || r.count() != 0 {
		t.Fatalf("previous on page 1 should be a no-op")
	}
	if err := c.NextPage(ctx); err != nil || r.count() != 0 {
		t.Fatalf("next without a result should be a no-op")
	}

	if err := c.Search(ctx, "mice"); err != nil {
		t.Fatal(err)
	}
	_ = c.SetFilter(FieldCategory, "Plant")
	for want := 2; want <= 3; want++ {
		if err := c.NextPage(ctx); err != nil {
			t.Fatal(err)
		}
		q := r.last()
		if q.Page != want || q.Keyword != "mice" || q.Filters.Category != taxonomy.All {
			t.Fatalf("page %d query = %+v", want, q)
		}
	}
	n := r.count()
	if err := c.NextPage(ctx); err != nil || r.count() != n {
		t.Fatalf("next on last page should be a no-op")
	}
	if err := c.PreviousPage(ctx); err != nil || r.last().Page != 2 {
		t.Fatalf("previous query = %+v", r.last())
	}
}

func TestFailedPageMoveStaysOnShownPage(t *testing.T) {
	failPage := 0
	r := &recorder{}
	r.result = func(q Query) (Result, error) {
		if q.Page == failPage {
			return Result{}, perr.Unavailablef("store down")
		}
		return Result{TotalPages: 3, CurrentPage: q.Page, Total: 25}, nil
	}
	c := New(r)
	ctx := context.Background()

	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	failPage = 2
	for range 2 {
		if err := c.NextPage(ctx); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("want unavailable, got %v", err)
		}
		if s := c.Snapshot(); s.Page != 1 || s.Result.CurrentPage != 1 || s.State != Error {
			t.Fatalf("snapshot after failed move = page %d result page %d state %v", s.Page, s.Result.CurrentPage, s.State)
		}
		if r.last().Page != 2 {
			t.Fatalf("move should request page 2, got %d", r.last().Page)
		}
	}

	failPage = 0
	if err := c.NextPage(ctx); err != nil {
		t.Fatal(err)
	}
	if s := c.Snapshot(); s.Page != 2 || s.Result.CurrentPage != 2 {
		t.Fatalf("recovered move = page %d result page %d", s.Page, s.Result.CurrentPage)
	}

	failPage = 1
	if err := c.PreviousPage(ctx); err == nil {
		t.Fatal("want failure")
	}
	if s := c.Snapshot(); s.Page != 2 {
		t.Fatalf("failed previous moved to page %d", s.Page)
	}
}

func TestErrorKeepsStaleResult(t *testing.T) {
	fail := false
	r := &recorder{}
	r.result = func(q Query) (Result, error) {
		if fail {
			return Result{}, perr.Unavailablef("store down")
		}
		return Result{TotalPages: 1, CurrentPage: 1, Total: 1, Experiments: []Experiment{{ID: "a"}}}, nil
	}
	c := New(r)
	ctx := context.Background()

	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	fail = true
	if err := c.Search(ctx, "x"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
	s := c.Snapshot()
	if s.State != Error || !s.Retryable || !s.HasResult || len(s.Result.Experiments) != 1 {
		t.Fatalf("snapshot after failure = %+v", s)
	}

	fail = false
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if s := c.Snapshot(); s.State != Loaded || s.Err != nil || s.Retryable {
		t.Fatalf("retry did not recover: %+v", s)
	}
	if r.last().Keyword != "x" {
		t.Fatalf("retry should re-issue the failed query")
	}
}

func TestValidationErrorNotRetryable(t *testing.T) {
	c := New(ResolverFunc(func(context.Context, Query) (Result, error) {
		return Result{}, perr.Validationf("yearFrom", "bad")
	}))
	_ = c.Load(context.Background())
	if s := c.Snapshot(); s.State != Error || s.Retryable {
		t.Fatalf("snapshot = %+v", s)
	}
}

// A is issued first and answers last; B must win and A must not touch state
func TestStaleResponseDiscarded(t *testing.T) {
	releaseA := make(chan struct{})
	startedA := make(chan struct{})
	res := ResolverFunc(func(ctx context.Context, q Query) (Result, error) {
		if q.Keyword == "A" {
			close(startedA)
			<-releaseA
			return Result{Total: 111, TotalPages: 13, CurrentPage: 1}, nil
		}
		return Result{Total: 2, TotalPages: 1, CurrentPage: 1}, nil
	})

	var mu sync.Mutex
	var states []State
	c := New(res, WithObserver(func(s Snapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	}))
	ctx := context.Background()

	errA := make(chan error, 1)
	go func() { errA <- c.Search(ctx, "A") }()
	<-startedA

	if err := c.Search(ctx, "B"); err != nil {
		t.Fatalf("B: %v", err)
	}
	close(releaseA)
	if err := <-errA; !stderrs.Is(err, ErrSuperseded) {
		t.Fatalf("A: want ErrSuperseded, got %v", err)
	}

	s := c.Snapshot()
	if s.Keyword != "B" || s.Result.Total != 2 || s.State != Loaded {
		t.Fatalf("stale response applied: %+v", s)
	}

	mu.Lock()
	defer mu.Unlock()
	if last := states[len(states)-1]; last != Loaded {
		t.Fatalf("last observed state = %v", last)
	}
	if len(states) != 3 {
		t.Fatalf("observer saw %v, want loading loading loaded", states)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Loading: "loading", Loaded: "loaded", Error: "error", State(9): "unknown"} {
		if s.String() != want {
			t.Fatalf("%d.String() = %q", s, s.String())
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New(&recorder{})
	_ = c.SetFilter(FieldYearFrom, "2001")
	_ = c.ApplyFilters(context.Background())
	s := c.Snapshot()
	*s.Filters.YearFrom = 1900
	if got := *c.Snapshot().Filters.YearFrom; got != 2001 {
		t.Fatalf("snapshot aliased controller state: %d", got)
	}
}
