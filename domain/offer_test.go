package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const (
	t0        = int64(1_700_000_000_000)
	month     = int64(2_592_000_000)
	testPrice = "19.99"
)

func newTestOffer(t *testing.T, ttl int64) *Offer {
	t.Helper()
	offer, err := NewOffer("vintage lamp", "a lamp", decimal.RequireFromString(testPrice), "EUR", ttl, "pub-1", t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return offer
}

func TestNewOffer(t *testing.T) {
	offer := newTestOffer(t, month)

	if offer.ID == "" {
		t.Error("expected generated id")
	}
	if offer.CreateTime != t0 {
		t.Errorf("create time = %d, want %d", offer.CreateTime, t0)
	}
	if offer.EndTime != t0+month {
		t.Errorf("end time = %d, want %d", offer.EndTime, t0+month)
	}
	if offer.Cancelled {
		t.Error("new offer must not be cancelled")
	}
	if got := offer.Status(t0); got != StatusOpen {
		t.Errorf("status = %s, want %s", got, StatusOpen)
	}
}

func TestNewOfferValidation(t *testing.T) {
	price := decimal.RequireFromString(testPrice)

	tests := []struct {
		name     string
		title    string
		desc     string
		currency string
		ttl      int64
		pub      string
		wantCode ErrorCode
	}{
		{"zero ttl", "t", "d", "EUR", 0, "pub-1", ErrCodeInvalidTTL},
		{"negative ttl", "t", "d", "EUR", -5, "pub-1", ErrCodeInvalidTTL},
		{"blank title", "   ", "d", "EUR", month, "pub-1", ErrCodeInvalid},
		{"title too long", strings.Repeat("x", 257), "d", "EUR", month, "pub-1", ErrCodeInvalid},
		{"blank description", "t", "", "EUR", month, "pub-1", ErrCodeInvalid},
		{"description too long", "t", strings.Repeat("x", 8193), "EUR", month, "pub-1", ErrCodeInvalid},
		{"empty currency", "t", "d", "", month, "pub-1", ErrCodeInvalid},
		{"missing publisher", "t", "d", "EUR", month, "", ErrCodeInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOffer(tc.title, tc.desc, price, tc.currency, tc.ttl, tc.pub, t0)
			if !IsDomainError(err, tc.wantCode) {
				t.Fatalf("error = %v, want code %s", err, tc.wantCode)
			}
		})
	}
}

func TestOfferStatus(t *testing.T) {
	offer := newTestOffer(t, month)

	if got := offer.Status(t0 + month - 1); got != StatusOpen {
		t.Errorf("one millisecond before end: status = %s, want %s", got, StatusOpen)
	}
	if got := offer.Status(t0 + month); got != StatusExpired {
		t.Errorf("at end time: status = %s, want %s", got, StatusExpired)
	}
	if got := offer.Status(t0 + month + 1); got != StatusExpired {
		t.Errorf("after end time: status = %s, want %s", got, StatusExpired)
	}

	// Cancelled wins over expired in reporting.
	offer.Cancelled = true
	if got := offer.Status(t0 + month + 1); got != StatusCancelled {
		t.Errorf("cancelled and expired: status = %s, want %s", got, StatusCancelled)
	}
}

func TestOfferStatusIdempotent(t *testing.T) {
	offer := newTestOffer(t, month)
	now := t0 + 12345
	if first, second := offer.Status(now), offer.Status(now); first != second {
		t.Errorf("classification not idempotent: %s then %s", first, second)
	}
}

func TestOfferIsOpen(t *testing.T) {
	offer := newTestOffer(t, month)

	if !offer.IsOpen(t0) {
		t.Error("fresh offer should be open")
	}
	want := !offer.Cancelled && offer.EndTime > t0
	if offer.IsOpen(t0) != want {
		t.Error("IsOpen disagrees with its definition")
	}
	if offer.IsOpen(t0 + month) {
		t.Error("offer open at its end time")
	}
}

func TestTTLRoundTrip(t *testing.T) {
	offer := newTestOffer(t, month)

	now := t0 + 1000
	if err := offer.SetTTL(7777, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := offer.TTL(now); got != 7777 {
		t.Errorf("ttl = %d, want 7777", got)
	}
	if offer.CreateTime != t0 {
		t.Error("SetTTL must not move the create time")
	}
	if got := offer.TTL(offer.EndTime + 1); got != 0 {
		t.Errorf("expired ttl = %d, want 0", got)
	}
}

func TestSetTTLRejectsNonPositive(t *testing.T) {
	offer := newTestOffer(t, month)
	if err := offer.SetTTL(0, t0); !IsDomainError(err, ErrCodeInvalidTTL) {
		t.Fatalf("error = %v, want %s", err, ErrCodeInvalidTTL)
	}
}

func TestOfferApplyPatch(t *testing.T) {
	offer := newTestOffer(t, month)
	newTitle := "fancier lamp"
	newPrice := decimal.RequireFromString("25.00")

	if err := offer.Apply(OfferPatch{Title: &newTitle, Price: &newPrice}, t0+500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offer.Title != newTitle {
		t.Errorf("title = %q, want %q", offer.Title, newTitle)
	}
	if !offer.Price.Equal(newPrice) {
		t.Errorf("price = %s, want %s", offer.Price, newPrice)
	}
	// Absent fields untouched.
	if offer.Description != "a lamp" || offer.Currency != "EUR" {
		t.Error("absent patch fields were modified")
	}
	if offer.EndTime != t0+month {
		t.Error("end time changed without a ttl in the patch")
	}
}

func TestOfferApplyPatchTTL(t *testing.T) {
	offer := newTestOffer(t, month)
	ttl := int64(1000)
	now := t0 + 100

	if err := offer.Apply(OfferPatch{TTL: &ttl}, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offer.EndTime != now+ttl {
		t.Errorf("end time = %d, want %d", offer.EndTime, now+ttl)
	}

	bad := int64(0)
	before := *offer
	if err := offer.Apply(OfferPatch{TTL: &bad}, now); !IsDomainError(err, ErrCodeInvalidTTL) {
		t.Fatalf("error = %v, want %s", err, ErrCodeInvalidTTL)
	}
	if *offer != before {
		t.Error("failed patch mutated the offer")
	}
}

func TestOfferApplyPatchValidation(t *testing.T) {
	offer := newTestOffer(t, month)
	blank := "   "
	before := *offer

	if err := offer.Apply(OfferPatch{Title: &blank}, t0); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("error = %v, want %s", err, ErrCodeInvalid)
	}
	if *offer != before {
		t.Error("failed patch mutated the offer")
	}
}
