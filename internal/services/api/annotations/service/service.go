// Package service contains annotation workflows
package service

import (
	"context"

	"spacebio/internal/core/normalize"
	"spacebio/internal/core/taxonomy"
	"spacebio/internal/modkit/repokit"
	perr "spacebio/internal/platform/errors"
	"spacebio/internal/platform/logger"
	pnet "spacebio/internal/platform/net"
	"spacebio/internal/services/api/annotations/domain"
	"spacebio/internal/services/api/annotations/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for annotations
type Service interface {
	domain.ServicePort
	domain.LookupPort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new annotations service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("annotations.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("annotations.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

func requireAdmin(id pnet.Identity) error {
	if !id.LoggedIn() {
		return perr.Unauthorizedf("login required")
	}
	if !id.IsAdmin() {
		return perr.Forbiddenf("admin role required")
	}
	return nil
}

func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", perr.Validationf("id", "id must be a uuid")
	}
	return u.String(), nil
}

// Create stores a new annotation under the normalized keyword
func (s *Svc) Create(ctx context.Context, by pnet.Identity, in domain.CreateInput) (domain.Annotation, error) {
	if err := requireAdmin(by); err != nil {
		return domain.Annotation{}, err
	}
	kw := normalize.Keyword(in.Keyword)
	if kw == "" {
		return domain.Annotation{}, perr.Validationf("keyword", "keyword must not be blank")
	}
	cat, ok := taxonomy.AnnotationCategoryOr(in.Category, taxonomy.General)
	if !ok {
		return domain.Annotation{}, perr.Validationf("category", "unknown category %q", in.Category)
	}
	createdBy := by.Username
	if createdBy == "" {
		createdBy = by.ID
	}

	a, inserted, err := s.Repo.Insert(ctx, repo.NewRow{
		Keyword:   kw,
		Title:     normalize.Term(in.Title),
		Content:   in.Content,
		Category:  string(cat),
		CreatedBy: createdBy,
	})
	if perr.IsDuplicateKey(err) || (err == nil && !inserted) {
		return domain.Annotation{}, perr.DuplicateKeyf("an annotation for keyword %q already exists", kw)
	}
	if err != nil {
		return domain.Annotation{}, perr.FromStore(err, "create annotation")
	}
	logger.C(ctx).Info().Str("annotation_id", a.ID).Str("keyword", kw).Msg("annotation created")
	return a, nil
}

// Update patches title, content, category or the active flag
func (s *Svc) Update(ctx context.Context, by pnet.Identity, id string, in domain.UpdateInput) (domain.Annotation, error) {
	if err := requireAdmin(by); err != nil {
		return domain.Annotation{}, err
	}
	id, err := parseID(id)
	if err != nil {
		return domain.Annotation{}, err
	}
	if in.Title != nil {
		t := normalize.Term(*in.Title)
		in.Title = &t
	}
	a, found, err := s.Repo.Update(ctx, id, in)
	if err != nil {
		return domain.Annotation{}, perr.FromStore(err, "update annotation")
	}
	if !found {
		return domain.Annotation{}, perr.NotFoundf("annotation %s not found", id)
	}
	logger.C(ctx).Info().Str("annotation_id", id).Msg("annotation updated")
	return a, nil
}

// Delete removes an annotation
func (s *Svc) Delete(ctx context.Context, by pnet.Identity, id string) error {
	if err := requireAdmin(by); err != nil {
		return err
	}
	id, err := parseID(id)
	if err != nil {
		return err
	}
	found, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return perr.FromStore(err, "delete annotation")
	}
	if !found {
		return perr.NotFoundf("annotation %s not found", id)
	}
	logger.C(ctx).Info().Str("annotation_id", id).Msg("annotation deleted")
	return nil
}

// List returns every annotation, inactive ones included, newest first
func (s *Svc) List(ctx context.Context, by pnet.Identity) ([]domain.Annotation, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}
	out, err := s.Repo.List(ctx)
	return out, perr.FromStore(err, "list annotations")
}

// Lookup returns the active annotation for keyword, nil when there is none
func (s *Svc) Lookup(ctx context.Context, keyword string) (*domain.Annotation, error) {
	return s.lookup(ctx, s.Repo, keyword)
}

// LookupWith is Lookup bound to the caller's Queryer
func (s *Svc) LookupWith(ctx context.Context, q repokit.Queryer, keyword string) (*domain.Annotation, error) {
	return s.lookup(ctx, s.binder.Bind(q), keyword)
}

func (s *Svc) lookup(ctx context.Context, r repo.Repo, keyword string) (*domain.Annotation, error) {
	kw := normalize.Keyword(keyword)
	if kw == "" {
		return nil, nil
	}
	a, err := r.ActiveByKeyword(ctx, kw)
	if err != nil {
		return nil, perr.FromStore(err, "lookup annotation")
	}
	logger.C(ctx).Debug().Str("keyword", kw).Bool("hit", a != nil).Msg("annotation lookup")
	return a, nil
}
