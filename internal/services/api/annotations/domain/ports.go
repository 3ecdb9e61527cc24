package domain

import (
	"context"

	"spacebio/internal/modkit/repokit"
	pnet "spacebio/internal/platform/net"
)

// ServicePort is the annotations use case surface
type ServicePort interface {
	Create(ctx context.Context, by pnet.Identity, in CreateInput) (Annotation, error)
	Update(ctx context.Context, by pnet.Identity, id string, in UpdateInput) (Annotation, error)
	Delete(ctx context.Context, by pnet.Identity, id string) error
	List(ctx context.Context, by pnet.Identity) ([]Annotation, error)
	Lookup(ctx context.Context, keyword string) (*Annotation, error)
}

// LookupPort is what other modules use to attach an annotation to their own reads
// q lets the caller run the lookup inside its transaction
type LookupPort interface {
	LookupWith(ctx context.Context, q repokit.Queryer, keyword string) (*Annotation, error)
}
