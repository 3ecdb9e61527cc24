// Package service resolves catalog queries
package service

import (
	"context"
	"math"
	"time"

	"spacebio/internal/core/normalize"
	"spacebio/internal/core/taxonomy"
	"spacebio/internal/modkit/repokit"
	perr "spacebio/internal/platform/errors"
	"spacebio/internal/platform/logger"
	"spacebio/internal/platform/metrics"
	anndomain "spacebio/internal/services/api/annotations/domain"
	"spacebio/internal/services/api/catalog/domain"
	"spacebio/internal/services/api/catalog/repo"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// Service defines the catalog service contract
type Service interface {
	domain.ServicePort
}

// Options tune the catalog service; zero values are usable
type Options struct {
	// Lookup attaches annotations to keyword searches; nil disables adminContent
	Lookup anndomain.LookupPort
	// Metrics may be nil
	Metrics *metrics.Metrics
	// StatsTTL caches Stats in process, 0 disables caching
	StatsTTL time.Duration
	// StatementTimeout bounds each search statement, 0 leaves the server default
	StatementTimeout time.Duration
}

// Svc implements the catalog service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	read   repokit.TxRunner

	lookup  anndomain.LookupPort
	metrics *metrics.Metrics
	stats   *cache.Cache
	ttl     time.Duration
}

const statsKey = "stats"

// New constructs a catalog service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], o Options) *Svc {
	if db == nil {
		panic("catalog.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		read:    repokit.WithBeginHooks(db, repokit.StatementTimeout(o.StatementTimeout)),
		lookup:  o.Lookup,
		metrics: o.Metrics,
		ttl:     o.StatsTTL,
	}
	if o.StatsTTL > 0 {
		s.stats = cache.New(o.StatsTTL, 2*o.StatsTTL)
	}
	return s
}

// Filter validates in and turns it into a repo predicate
// page and limit are checked here too so direct callers get the same rules as HTTP
func Filter(in domain.SearchInput) (repo.Filter, error) {
	if in.Page < 1 {
		return repo.Filter{}, perr.Validationf("page", "page must be at least 1")
	}
	if in.Limit < 1 || in.Limit > domain.MaxLimit {
		return repo.Filter{}, perr.Validationf("limit", "limit must be between 1 and %d", domain.MaxLimit)
	}
	// the row offset (page-1)*limit must fit an int
	if in.Page > math.MaxInt/in.Limit {
		return repo.Filter{}, perr.Validationf("page", "page must be at most %d", math.MaxInt/in.Limit)
	}
	if !taxonomy.ValidCategory(in.Category) {
		return repo.Filter{}, perr.Validationf("category", "unknown category %q", in.Category)
	}
	if !taxonomy.ValidOrganism(in.Organism) {
		return repo.Filter{}, perr.Validationf("organism", "unknown organism %q", in.Organism)
	}
	f := repo.Filter{YearFrom: in.YearFrom, YearTo: in.YearTo, Keyword: normalize.Keyword(in.Keyword)}
	if !taxonomy.IsAll(in.Category) {
		f.Category = normalize.Term(in.Category)
	}
	if !taxonomy.IsAll(in.Organism) {
		f.Organism = normalize.Term(in.Organism)
	}
	return f, nil
}

// Search returns one page of matching experiments and, for keyword searches, the active annotation
// count, page and annotation come from one read only snapshot
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchResult, error) {
	f, err := Filter(in)
	if err != nil {
		s.metrics.ObserveSearch("invalid", in.Keyword != "")
		return domain.SearchResult{}, err
	}

	out := domain.SearchResult{Experiments: []domain.Experiment{}, CurrentPage: in.Page}
	offset := (in.Page - 1) * in.Limit

	err = repokit.InReadTx(ctx, s.read, s.binder, func(q repokit.Queryer, r repo.Repo) error {
		total, err := r.Count(ctx, f)
		if err != nil {
			return err
		}
		out.Total = total
		if total > offset {
			if out.Experiments, err = r.Page(ctx, f, in.Limit, offset); err != nil {
				return err
			}
		}
		if s.lookup != nil && f.Keyword != "" {
			if out.AdminContent, err = s.lookup.LookupWith(ctx, q, f.Keyword); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveSearch("error", f.Keyword != "")
		return domain.SearchResult{}, perr.FromStore(err, "catalog search")
	}

	out.TotalPages = (out.Total + in.Limit - 1) / in.Limit
	s.metrics.ObserveSearch("ok", f.Keyword != "")
	logger.C(ctx).Debug().
		Str("category", f.Category).
		Str("organism", f.Organism).
		Str("keyword", f.Keyword).
		Int("page", in.Page).
		Int("total", out.Total).
		Msg("catalog search")
	return out, nil
}

// Get returns one experiment by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Experiment, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return domain.Experiment{}, perr.Validationf("id", "id must be a uuid")
	}
	e, err := s.Repo.ByID(ctx, u.String())
	if err != nil {
		return domain.Experiment{}, perr.FromStore(err, "get experiment")
	}
	if e == nil {
		return domain.Experiment{}, perr.NotFoundf("experiment %s not found", u)
	}
	return *e, nil
}

// Stats returns catalog counts by category, year and organism
// the three aggregates run concurrently on the pool
func (s *Svc) Stats(ctx context.Context) (domain.Stats, error) {
	if s.stats != nil {
		if v, ok := s.stats.Get(statsKey); ok {
			return v.(domain.Stats), nil
		}
	}

	var out domain.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ByCategory, err = s.Repo.CountByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ByYear, err = s.Repo.CountByYear(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ByOrganism, err = s.Repo.CountByOrganism(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Stats{}, perr.FromStore(err, "catalog stats")
	}

	if s.stats != nil {
		s.stats.Set(statsKey, out, s.ttl)
	}
	return out, nil
}
