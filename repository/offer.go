package repository

import (
	"context"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/query"
)

// Page is an opaque offset/limit pair passed through from the caller.
type Page struct {
	Limit  int
	Offset int
}

// OfferRepository is the predicate-addressable store of offers.
// FindOne returns domain.ErrOfferNotFound when no offer matches.
// Save upserts and is durable upon return.
type OfferRepository interface {
	FindOne(ctx context.Context, p query.Predicate) (*domain.Offer, error)
	FindAll(ctx context.Context, p query.Predicate, page Page) ([]domain.Offer, error)
	Count(ctx context.Context, p query.Predicate) (int64, error)
	Save(ctx context.Context, offer *domain.Offer) error
}
