package directoryRepo

import (
	"context"
	"errors"

	"bookline/models"
)

// ErrNotFound is returned when no resolver knows the provider id.
var ErrNotFound = errors.New("provider not found")

// Resolver looks up a single provider by id. Implementations are read-only
// and safe for concurrent use across negotiations.
type Resolver interface {
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
}

// Directory is a resolver that can also enumerate candidates for ranking.
type Directory interface {
	Resolver
	ListByCategory(ctx context.Context, category string) ([]models.Provider, error)
}

// Chain tries each resolver in order and returns the first hit. It lets the
// negotiation core stay agnostic to whether a provider came from the real
// directory or was synthesized from its id.
type Chain struct {
	resolvers []Resolver
}

func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

func (c *Chain) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	for _, r := range c.resolvers {
		p, err := r.GetProvider(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}
