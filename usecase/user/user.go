// Package user resolves identities and owns user account operations. It is
// the single place the rest of the system asks "does this user exist, is it
// enabled, does it own that offer".
package user

import (
	"context"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/pkg/clock"
	"github.com/offerdeck/backend/query"
	"github.com/offerdeck/backend/repository"
	"github.com/offerdeck/backend/usecase"
)

type Service struct {
	users  repository.UserRepository
	offers repository.OfferRepository
	hasher usecase.PasswordHasher
	clock  clock.Clock
}

func New(users repository.UserRepository, offers repository.OfferRepository, hasher usecase.PasswordHasher, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Service{
		users:  users,
		offers: offers,
		hasher: hasher,
		clock:  clk,
	}
}

// Register creates a new enabled user with an encoded password. Usernames
// are unique; a taken name fails with a conflict.
func (s *Service) Register(ctx context.Context, username, rawPassword string) (*domain.User, error) {
	if !domain.ValidUsername(username) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "username must be 3-24 alphanumeric or underscore characters")
	}
	if rawPassword == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "password must not be empty")
	}

	taken, err := s.users.Count(ctx, query.UserUsernameEquals(username))
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, domain.ErrUsernameTaken
	}

	encoded, err := s.hasher.Encode(rawPassword)
	if err != nil {
		return nil, err
	}

	created, err := domain.NewUser(username, encoded, s.clock.NowMillis())
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Authenticate verifies a username/password pair. Disabled users cannot
// authenticate.
func (s *Service) Authenticate(ctx context.Context, username, rawPassword string) (*domain.User, error) {
	found, err := s.users.FindOne(ctx, query.UserUsernameEquals(username))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Matches(rawPassword, found.EncodedPassword) {
		return nil, domain.ErrInvalidCredentials
	}
	if !found.IsEnabled() {
		return nil, domain.ErrUserNotEnabled(found.ID)
	}
	return found, nil
}

// ResolveEnabled returns the user when it exists and is enabled.
func (s *Service) ResolveEnabled(ctx context.Context, userID string) (*domain.User, error) {
	found, err := s.ResolveExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found.IsEnabled() {
		return nil, domain.ErrUserNotEnabled(userID)
	}
	return found, nil
}

// ResolveExists returns the user regardless of enabled status. Callers that
// care about enabledness check it themselves.
func (s *Service) ResolveExists(ctx context.Context, userID string) (*domain.User, error) {
	found, err := s.users.FindOne(ctx, query.UserIDEquals(userID))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUserNotFound) {
			return nil, domain.ErrUserNotFound(userID)
		}
		return nil, err
	}
	return found, nil
}

// IsPublisherOf reports whether the user published the offer, without
// raising. Missing offers and missing users both report false.
func (s *Service) IsPublisherOf(ctx context.Context, offerID, userID string) (bool, error) {
	found, err := s.offers.FindOne(ctx, query.OfferIDEquals(offerID))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeOfferNotFound) {
			return false, nil
		}
		return false, err
	}
	return found.PublisherID == userID, nil
}

// ChangePassword re-encodes and persists a new credential for the user.
func (s *Service) ChangePassword(ctx context.Context, userID, rawPassword string) error {
	if rawPassword == "" {
		return domain.NewError(domain.ErrCodeInvalid, "password must not be empty")
	}
	found, err := s.ResolveEnabled(ctx, userID)
	if err != nil {
		return err
	}
	encoded, err := s.hasher.Encode(rawPassword)
	if err != nil {
		return err
	}
	found.EncodedPassword = encoded
	return s.users.Save(ctx, found)
}

// SetEnabled flips a user's enabled flag. Operator-facing; no authorization
// is applied here.
func (s *Service) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	found, err := s.ResolveExists(ctx, userID)
	if err != nil {
		return err
	}
	found.Enabled = enabled
	return s.users.Save(ctx, found)
}

var _ usecase.UserResolver = (*Service)(nil)
