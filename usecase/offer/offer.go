// Package offer owns the lifecycle of an offer: the transition rules from
// open to cancelled or expired, the authorization checks that gate every
// mutation, and the predicate compositions behind the read paths.
//
// An offer's state is never stored as an enum. It is derived from the
// cancelled flag and the end time against the injected clock, so expiry
// needs no sweeps: an offer simply stops matching the open predicate.
package offer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/pkg/clock"
	"github.com/offerdeck/backend/query"
	"github.com/offerdeck/backend/repository"
	"github.com/offerdeck/backend/usecase"
)

type UseCase struct {
	offers   repository.OfferRepository
	resolver usecase.UserResolver
	recorder usecase.TransitionRecorder
	clock    clock.Clock
}

func New(offers repository.OfferRepository, resolver usecase.UserResolver, recorder usecase.TransitionRecorder, clk clock.Clock) *UseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &UseCase{
		offers:   offers,
		resolver: resolver,
		recorder: recorder,
		clock:    clk,
	}
}

// CreateInput carries the caller-supplied fields of a new offer. TTL is in
// milliseconds from now; only the resulting end time is persisted.
type CreateInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Currency    string
	TTL         int64
	PublisherID string
}

// Create publishes a new open offer on behalf of an enabled user.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*domain.Offer, error) {
	publisher, err := uc.resolver.ResolveEnabled(ctx, in.PublisherID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.NowMillis()
	created, err := domain.NewOffer(in.Title, in.Description, in.Price, in.Currency, in.TTL, publisher.ID, now)
	if err != nil {
		return nil, err
	}
	if err := uc.offers.Save(ctx, created); err != nil {
		return nil, err
	}
	uc.record(ctx, created, usecase.TransitionCreated, now)
	return created, nil
}

// Cancel marks an open offer cancelled. Only the publisher may cancel, the
// transition is terminal, and a closed offer never mutates again.
func (uc *UseCase) Cancel(ctx context.Context, offerID, actorID string) error {
	now := uc.clock.NowMillis()
	found, err := uc.gate(ctx, offerID, actorID, now)
	if err != nil {
		return err
	}

	found.Cancelled = true
	if err := uc.offers.Save(ctx, found); err != nil {
		return err
	}
	uc.record(ctx, found, usecase.TransitionCancelled, now)
	return nil
}

// Update applies a partial patch to an open offer. Absent fields are left
// unchanged; a present ttl recomputes the end time from now.
func (uc *UseCase) Update(ctx context.Context, offerID, actorID string, patch domain.OfferPatch) error {
	now := uc.clock.NowMillis()
	found, err := uc.gate(ctx, offerID, actorID, now)
	if err != nil {
		return err
	}

	if err := found.Apply(patch, now); err != nil {
		return err
	}
	if err := uc.offers.Save(ctx, found); err != nil {
		return err
	}
	uc.record(ctx, found, usecase.TransitionUpdated, now)
	return nil
}

// gate runs the shared resolution, authorization, and state checks that
// precede every mutation. Check order is part of the contract: actor
// resolution, then offer resolution, then ownership, then cancelled, then
// expired. Nothing is written when any check fails.
func (uc *UseCase) gate(ctx context.Context, offerID, actorID string, now int64) (*domain.Offer, error) {
	if _, err := uc.resolver.ResolveEnabled(ctx, actorID); err != nil {
		return nil, err
	}

	found, err := uc.findByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if found.PublisherID != actorID {
		return nil, domain.ErrUserNotAuthorized(actorID)
	}
	if found.Cancelled {
		return nil, domain.ErrOfferCancelled(offerID)
	}
	if found.IsExpired(now) {
		return nil, domain.ErrOfferExpired(offerID)
	}
	return found, nil
}

// GetOpen fetches an offer and fails with the closed reason when it is not
// open. Cancelled wins over expired in reporting, since cancellation was an
// explicit act.
func (uc *UseCase) GetOpen(ctx context.Context, offerID string) (*domain.Offer, error) {
	found, err := uc.findByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	switch found.Status(uc.clock.NowMillis()) {
	case domain.StatusCancelled:
		return nil, domain.ErrOfferCancelled(offerID)
	case domain.StatusExpired:
		return nil, domain.ErrOfferExpired(offerID)
	default:
		return found, nil
	}
}

// ListOpen returns the open offers at the current instant.
func (uc *UseCase) ListOpen(ctx context.Context, page repository.Page) ([]domain.Offer, error) {
	return uc.offers.FindAll(ctx, query.OfferIsOpen(uc.clock.NowMillis()), page)
}

// ListOpenByPublisher returns the open offers of an enabled publisher.
func (uc *UseCase) ListOpenByPublisher(ctx context.Context, publisherID string, page repository.Page) ([]domain.Offer, error) {
	publisher, err := uc.resolver.ResolveEnabled(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	p := query.And(
		query.OfferIsOpen(uc.clock.NowMillis()),
		query.OfferPublisherIDEquals(publisher.ID),
	)
	return uc.offers.FindAll(ctx, p, page)
}

// PublisherOf returns the publisher of an open offer.
func (uc *UseCase) PublisherOf(ctx context.Context, offerID string) (*domain.User, error) {
	found, err := uc.GetOpen(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return uc.resolver.ResolveExists(ctx, found.PublisherID)
}

// TTLOf returns the remaining ttl view of an offer at the current instant.
func (uc *UseCase) TTLOf(o *domain.Offer) int64 {
	return o.TTL(uc.clock.NowMillis())
}

func (uc *UseCase) findByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	found, err := uc.offers.FindOne(ctx, query.OfferIDEquals(offerID))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeOfferNotFound) {
			return nil, domain.ErrOfferNotFound(offerID)
		}
		return nil, err
	}
	return found, nil
}

func (uc *UseCase) record(ctx context.Context, o *domain.Offer, kind string, now int64) {
	if uc.recorder == nil {
		return
	}
	uc.recorder.RecordTransition(ctx, usecase.Transition{
		OfferID:     o.ID,
		PublisherID: o.PublisherID,
		Kind:        kind,
		At:          now,
	})
}
