package repository

import (
	"context"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/query"
)

// UserRepository is the predicate-addressable store of users.
// FindOne returns domain.ErrUserNotFound when no user matches.
type UserRepository interface {
	FindOne(ctx context.Context, p query.Predicate) (*domain.User, error)
	FindAll(ctx context.Context, p query.Predicate, page Page) ([]domain.User, error)
	Count(ctx context.Context, p query.Predicate) (int64, error)
	Save(ctx context.Context, user *domain.User) error
}
