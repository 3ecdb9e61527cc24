// Package repo provides postgres access for the experiment catalog
package repo

import (
	"context"

	"spacebio/internal/modkit/repokit"
	"spacebio/internal/services/api/catalog/domain"
)

// Filter is a resolved predicate; empty strings and nil bounds match everything
// Keyword must already be normalized
type Filter struct {
	Organism string
	Category string
	YearFrom *int
	YearTo   *int
	Keyword  string
}

// Repo defines the repository contract for the catalog
type Repo interface {
	Count(ctx context.Context, f Filter) (int, error)
	Page(ctx context.Context, f Filter, limit, offset int) ([]domain.Experiment, error)
	ByID(ctx context.Context, id string) (*domain.Experiment, error)

	CountByCategory(ctx context.Context) ([]domain.Bucket[string], error)
	CountByOrganism(ctx context.Context) ([]domain.Bucket[string], error)
	CountByYear(ctx context.Context) ([]domain.Bucket[int], error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// where takes $1..$5 in Filter field order
const where = `
where ($1 = '' or organism = $1)
and ($2 = '' or organism_category = $2)
and ($3::int is null or year >= $3)
and ($4::int is null or year <= $4)
and ($5 = '' or search_vec @@ plainto_tsquery('english', $5))
`

const columns = `id::text, title, description, organism, organism_category, mission, year,
key_findings, keywords, data_link, principal_investigator, coalesce(duration_days, 0)`

func (f Filter) args() []any { return []any{f.Organism, f.Category, f.YearFrom, f.YearTo, f.Keyword} }

func scan(row repokit.Row) (domain.Experiment, error) {
	var e domain.Experiment
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Organism, &e.OrganismCategory, &e.Mission, &e.Year,
		&e.KeyFindings, &e.Keywords, &e.DataLink, &e.PrincipalInvestigator, &e.Duration)
	if e.Keywords == nil {
		e.Keywords = []string{}
	}
	return e, err
}

func (r *queries) Count(ctx context.Context, f Filter) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `select count(*) from experiments`+where, f.args()...).Scan(&n)
	return n, err
}

func (r *queries) Page(ctx context.Context, f Filter, limit, offset int) ([]domain.Experiment, error) {
	sql := `select ` + columns + ` from experiments` + where + `
order by year desc, created_at, id
limit $6 offset $7`
	rows, err := r.q.Query(ctx, sql, append(f.args(), limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Experiment, 0, limit)
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *queries) ByID(ctx context.Context, id string) (*domain.Experiment, error) {
	e, err := scan(r.q.QueryRow(ctx, `select `+columns+` from experiments where id = $1`, id))
	if repokit.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *queries) CountByCategory(ctx context.Context) ([]domain.Bucket[string], error) {
	return buckets[string](ctx, r.q, `select organism_category, count(*) from experiments group by 1 order by 1`)
}

func (r *queries) CountByOrganism(ctx context.Context) ([]domain.Bucket[string], error) {
	return buckets[string](ctx, r.q, `select organism, count(*) from experiments group by 1 order by 1`)
}

func (r *queries) CountByYear(ctx context.Context) ([]domain.Bucket[int], error) {
	return buckets[int](ctx, r.q, `select year, count(*) from experiments group by 1 order by 1`)
}

func buckets[K string | int](ctx context.Context, q repokit.Queryer, sql string) ([]domain.Bucket[K], error) {
	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Bucket[K]{}
	for rows.Next() {
		var b domain.Bucket[K]
		if err := rows.Scan(&b.ID, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
