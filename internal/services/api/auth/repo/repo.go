// Package repo provides postgres access for user accounts
package repo

import (
	"context"

	"spacebio/internal/modkit/repokit"
	"spacebio/internal/services/api/auth/domain"
)

type (
	// PG implements domain.UserStore using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.UserStore] { return PG{} }

// Bind binds a Postgres queryer to the UserStore implementation
func (PG) Bind(q repokit.Queryer) domain.UserStore { return &queries{q: q} }

func (r *queries) Create(ctx context.Context, a domain.Account) (domain.User, bool, error) {
	const sql = `
insert into users (username, email, password_hash, role)
values ($1, $2, $3, $4)
on conflict do nothing
returning id::text, username, email, role`
	var u domain.User
	err := r.q.QueryRow(ctx, sql, a.Username, a.Email, string(a.PasswordHash), string(a.Role)).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role)
	if repokit.IsNoRows(err) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (r *queries) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var (
		a    domain.Account
		hash string
	)
	err := r.q.QueryRow(ctx, `select id::text, username, email, role, password_hash from users where email = $1`, email).
		Scan(&a.ID, &a.Username, &a.Email, &a.Role, &hash)
	if repokit.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.PasswordHash = []byte(hash)
	return &a, nil
}

func (r *queries) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.q.QueryRow(ctx, `select id::text, username, email, role from users where id = $1`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role)
	if repokit.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
