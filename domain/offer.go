package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxTitleLen       = 256
	maxDescriptionLen = 8192
)

// OfferStatus is the derived lifecycle state of an offer. It is never
// persisted; it is computed from the cancelled flag and the end time.
type OfferStatus string

const (
	StatusOpen      OfferStatus = "open"
	StatusCancelled OfferStatus = "cancelled"
	StatusExpired   OfferStatus = "expired"
)

// Offer represents a time-limited listing published by a user.
// CreateTime and EndTime are unix milliseconds.
type Offer struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	CreateTime  int64           `json:"create_time"`
	EndTime     int64           `json:"end_time"`
	Cancelled   bool            `json:"cancelled"`
	PublisherID string          `json:"publisher_id"`
}

// NewOffer builds a validated offer, assigning its id and timestamps.
// Only the end time is derived from ttl; ttl itself is not stored.
func NewOffer(title, description string, price decimal.Decimal, currency string, ttl int64, publisherID string, now int64) (*Offer, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL(ttl)
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if strings.TrimSpace(currency) == "" {
		return nil, NewError(ErrCodeInvalid, "currency must not be empty")
	}
	if publisherID == "" {
		return nil, NewError(ErrCodeInvalid, "publisher id must not be empty")
	}
	return &Offer{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Price:       price,
		Currency:    currency,
		CreateTime:  now,
		EndTime:     now + ttl,
		PublisherID: publisherID,
	}, nil
}

// IsExpired reports whether the offer's end time has passed.
func (o *Offer) IsExpired(now int64) bool {
	return o != nil && now >= o.EndTime
}

// IsOpen reports whether the offer is neither cancelled nor expired.
func (o *Offer) IsOpen(now int64) bool {
	return o != nil && !o.Cancelled && o.EndTime > now
}

// Status derives the lifecycle state. An offer that is both cancelled and
// past its end time reports cancelled, since cancellation was explicit.
func (o *Offer) Status(now int64) OfferStatus {
	switch {
	case o.Cancelled:
		return StatusCancelled
	case o.IsExpired(now):
		return StatusExpired
	default:
		return StatusOpen
	}
}

// TTL returns the remaining time-to-live in milliseconds, never negative.
func (o *Offer) TTL(now int64) int64 {
	if o == nil || o.EndTime <= now {
		return 0
	}
	return o.EndTime - now
}

// SetTTL recomputes the end time from now. The create time never changes.
func (o *Offer) SetTTL(ttl, now int64) error {
	if ttl <= 0 {
		return ErrInvalidTTL(ttl)
	}
	o.EndTime = now + ttl
	return nil
}

// OfferPatch carries the fields of a partial update. Nil fields are left
// unchanged on the offer.
type OfferPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Currency    *string
	TTL         *int64
}

// Apply mutates the offer with the patch fields that are present. A present
// ttl recomputes the end time from now. The offer is untouched on error.
func (o *Offer) Apply(patch OfferPatch, now int64) error {
	if patch.TTL != nil && *patch.TTL <= 0 {
		return ErrInvalidTTL(*patch.TTL)
	}
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return err
		}
	}
	if patch.Currency != nil && strings.TrimSpace(*patch.Currency) == "" {
		return NewError(ErrCodeInvalid, "currency must not be empty")
	}

	if patch.Title != nil {
		o.Title = *patch.Title
	}
	if patch.Description != nil {
		o.Description = *patch.Description
	}
	if patch.Price != nil {
		o.Price = *patch.Price
	}
	if patch.Currency != nil {
		o.Currency = *patch.Currency
	}
	if patch.TTL != nil {
		o.EndTime = now + *patch.TTL
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewError(ErrCodeInvalid, "title must not be blank")
	}
	if len(title) > maxTitleLen {
		return NewError(ErrCodeInvalid, "title too long")
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return NewError(ErrCodeInvalid, "description must not be blank")
	}
	if len(description) > maxDescriptionLen {
		return NewError(ErrCodeInvalid, "description too long")
	}
	return nil
}
