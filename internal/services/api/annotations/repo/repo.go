// Package repo provides postgres access for annotations
package repo

import (
	"context"

	"spacebio/internal/modkit/repokit"
	"spacebio/internal/services/api/annotations/domain"
)

// Repo defines the repository contract for annotations
type Repo interface {
	// Insert adds a row unless the keyword exists; ok is false on conflict
	Insert(ctx context.Context, in NewRow) (a domain.Annotation, ok bool, err error)
	Update(ctx context.Context, id string, p domain.UpdateInput) (a domain.Annotation, ok bool, err error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]domain.Annotation, error)
	ActiveByKeyword(ctx context.Context, keyword string) (*domain.Annotation, error)
}

// NewRow is an annotation before insert
type NewRow struct {
	Keyword   string
	Title     string
	Content   string
	Category  string
	CreatedBy string
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

const columns = `id::text, keyword, title, content, category, created_by, is_active, created_at, updated_at`

func scan(row repokit.Row) (domain.Annotation, error) {
	var a domain.Annotation
	err := row.Scan(&a.ID, &a.Keyword, &a.Title, &a.Content, &a.Category, &a.CreatedBy, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *queries) Insert(ctx context.Context, in NewRow) (domain.Annotation, bool, error) {
	const sql = `
insert into annotations (keyword, title, content, category, created_by)
values ($1, $2, $3, $4, $5)
on conflict (keyword) do nothing
returning ` + columns
	a, err := scan(r.q.QueryRow(ctx, sql, in.Keyword, in.Title, in.Content, in.Category, in.CreatedBy))
	if repokit.IsNoRows(err) {
		return domain.Annotation{}, false, nil
	}
	if err != nil {
		return domain.Annotation{}, false, err
	}
	return a, true, nil
}

func (r *queries) Update(ctx context.Context, id string, p domain.UpdateInput) (domain.Annotation, bool, error) {
	const sql = `
update annotations set
  title = coalesce($2, title),
  content = coalesce($3, content),
  category = coalesce($4, category),
  is_active = coalesce($5, is_active),
  updated_at = now()
where id = $1
returning ` + columns
	a, err := scan(r.q.QueryRow(ctx, sql, id, p.Title, p.Content, p.Category, p.IsActive))
	if repokit.IsNoRows(err) {
		return domain.Annotation{}, false, nil
	}
	if err != nil {
		return domain.Annotation{}, false, err
	}
	return a, true, nil
}

func (r *queries) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `delete from annotations where id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) List(ctx context.Context) ([]domain.Annotation, error) {
	rows, err := r.q.Query(ctx, `select `+columns+` from annotations order by created_at desc, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Annotation{}
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *queries) ActiveByKeyword(ctx context.Context, keyword string) (*domain.Annotation, error) {
	a, err := scan(r.q.QueryRow(ctx, `select `+columns+` from annotations where keyword = $1 and is_active`, keyword))
	if repokit.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
