package domain

import "context"

// ServicePort defines the catalog service contract
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (SearchResult, error)
	Get(ctx context.Context, id string) (Experiment, error)
	Stats(ctx context.Context) (Stats, error)
}
