package usecase

import (
	"context"

	"github.com/offerdeck/backend/domain"
)

// UserResolver answers identity questions for the offer lifecycle without
// binding it to the user use case package.
type UserResolver interface {
	ResolveEnabled(ctx context.Context, userID string) (*domain.User, error)
	ResolveExists(ctx context.Context, userID string) (*domain.User, error)
}

// PasswordHasher abstracts credential encoding so use cases never see the
// hashing mechanism.
type PasswordHasher interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// Transition kinds recorded after successful lifecycle writes.
const (
	TransitionCreated   = "created"
	TransitionCancelled = "cancelled"
	TransitionUpdated   = "updated"
)

// Transition describes one successful offer state change.
type Transition struct {
	OfferID     string `json:"offer_id"`
	PublisherID string `json:"publisher_id"`
	Kind        string `json:"kind"`
	At          int64  `json:"at"`
}

// TransitionRecorder receives transitions after they are persisted. Recording
// is best-effort; implementations must not fail the originating operation.
type TransitionRecorder interface {
	RecordTransition(ctx context.Context, t Transition)
}
