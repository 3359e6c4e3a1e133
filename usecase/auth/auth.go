// Package auth issues and manages sessions for authenticated publishers.
// Sessions live in Redis; the HTTP layer wraps them in signed tokens.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/repository"
	userUC "github.com/offerdeck/backend/usecase/user"
)

type UseCase struct {
	users    *userUC.Service
	sessions repository.SessionRepository
}

func New(users *userUC.Service, sessions repository.SessionRepository) *UseCase {
	return &UseCase{
		users:    users,
		sessions: sessions,
	}
}

// Login verifies credentials and opens a session for the user.
func (uc *UseCase) Login(ctx context.Context, username, rawPassword string, ttl time.Duration) (*domain.Session, error) {
	authenticated, err := uc.users.Authenticate(ctx, username, rawPassword)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    authenticated.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns a live session, expiring it eagerly when stale.
func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends a session's lifetime.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

// RevokeSession deletes a session.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}
