package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/query"
	"github.com/offerdeck/backend/repository"
)

const (
	t0    = int64(1_700_000_000_000)
	month = int64(2_592_000_000)
)

func seedUser(t *testing.T, db *DB, username string, enabled bool) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "$2a$10$hash", t0)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	user.Enabled = enabled
	if err := db.Users().Save(context.Background(), user); err != nil {
		t.Fatalf("save user: %v", err)
	}
	return user
}

func seedOffer(t *testing.T, db *DB, title, publisherID string, ttl int64) *domain.Offer {
	t.Helper()
	offer, err := domain.NewOffer(title, "desc", decimal.RequireFromString("10.00"), "EUR", ttl, publisherID, t0)
	if err != nil {
		t.Fatalf("new offer: %v", err)
	}
	if err := db.Offers().Save(context.Background(), offer); err != nil {
		t.Fatalf("save offer: %v", err)
	}
	return offer
}

func offerIDs(offers []domain.Offer) []string {
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestOfferFindOneByID(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)
	offer := seedOffer(t, db, "lamp", alice.ID, month)

	got, err := db.Offers().FindOne(context.Background(), query.OfferIDEquals(offer.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != offer.ID || got.Title != "lamp" {
		t.Errorf("got %+v, want offer %s", got, offer.ID)
	}

	if _, err := db.Offers().FindOne(context.Background(), query.OfferIDEquals("missing")); !domain.IsDomainError(err, domain.ErrCodeOfferNotFound) {
		t.Fatalf("error = %v, want %s", err, domain.ErrCodeOfferNotFound)
	}
}

func TestOfferListOpen(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)

	open := seedOffer(t, db, "open", alice.ID, month)
	short := seedOffer(t, db, "short", alice.ID, 1000)
	cancelled := seedOffer(t, db, "cancelled", alice.ID, month)
	cancelled.Cancelled = true
	if err := db.Offers().Save(context.Background(), cancelled); err != nil {
		t.Fatalf("save: %v", err)
	}

	now := t0 + 1000 // the short offer expires exactly here
	offers, err := db.Offers().FindAll(context.Background(), query.OfferIsOpen(now), repository.Page{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != open.ID {
		t.Errorf("open offers = %v, want just %s", offerIDs(offers), open.ID)
	}

	// One millisecond earlier the short offer is still open.
	offers, err = db.Offers().FindAll(context.Background(), query.OfferIsOpen(now-1), repository.Page{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 2 || offers[0].ID != open.ID || offers[1].ID != short.ID {
		t.Errorf("open offers = %v, want [%s %s]", offerIDs(offers), open.ID, short.ID)
	}
}

func TestOfferFilterByPublisher(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)
	bob := seedUser(t, db, "bob", true)
	aliceOffer := seedOffer(t, db, "from alice", alice.ID, month)
	seedOffer(t, db, "from bob", bob.ID, month)

	byID := query.And(query.OfferIsOpen(t0), query.OfferPublisherIDEquals(alice.ID))
	offers, err := db.Offers().FindAll(context.Background(), byID, repository.Page{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != aliceOffer.ID {
		t.Errorf("by publisher id = %v, want [%s]", offerIDs(offers), aliceOffer.ID)
	}

	// Username predicates resolve through the stored users.
	byName := query.And(query.OfferIsOpen(t0), query.OfferPublisherUsernameEquals("alice"))
	offers, err = db.Offers().FindAll(context.Background(), byName, repository.Page{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != aliceOffer.ID {
		t.Errorf("by publisher username = %v, want [%s]", offerIDs(offers), aliceOffer.ID)
	}
}

func TestFindAllDeterministic(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)
	for i := 0; i < 5; i++ {
		seedOffer(t, db, "offer", alice.ID, month)
	}

	p := query.OfferIsOpen(t0)
	first, err := db.Offers().FindAll(context.Background(), p, repository.Page{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := db.Offers().FindAll(context.Background(), p, repository.Page{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("len = %d, want 5", len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order changed between identical queries at index %d", i)
		}
	}
}

func TestFindAllPagination(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)
	var all []string
	for i := 0; i < 5; i++ {
		all = append(all, seedOffer(t, db, "offer", alice.ID, month).ID)
	}

	p := query.OfferIsOpen(t0)
	tests := []struct {
		name string
		page repository.Page
		want []string
	}{
		{"first two", repository.Page{Limit: 2}, all[:2]},
		{"middle", repository.Page{Limit: 2, Offset: 2}, all[2:4]},
		{"tail", repository.Page{Limit: 10, Offset: 4}, all[4:]},
		{"past the end", repository.Page{Limit: 2, Offset: 9}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offers, err := db.Offers().FindAll(context.Background(), p, tc.page)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := offerIDs(offers)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestOfferCount(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)
	seedOffer(t, db, "a", alice.ID, month)
	seedOffer(t, db, "b", alice.ID, 1000)

	count, err := db.Offers().Count(context.Background(), query.OfferIsOpen(t0+2000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSaveUpdatesInPlace(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)
	offer := seedOffer(t, db, "lamp", alice.ID, month)

	offer.Cancelled = true
	if err := db.Offers().Save(context.Background(), offer); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.Offers().FindOne(context.Background(), query.OfferIDEquals(offer.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Cancelled {
		t.Error("update not persisted")
	}
	count, err := db.Offers().Count(context.Background(), query.OfferIDEquals(offer.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("count after re-save = %d, want 1", count)
	}
}

func TestUserFindOne(t *testing.T) {
	db := New()
	alice := seedUser(t, db, "alice", true)
	seedUser(t, db, "bob", false)

	got, err := db.Users().FindOne(context.Background(), query.UserUsernameEquals("alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != alice.ID {
		t.Errorf("got user %s, want %s", got.ID, alice.ID)
	}

	enabled := query.And(query.UserIDEquals(alice.ID), query.UserIsEnabled())
	if _, err := db.Users().FindOne(context.Background(), enabled); err != nil {
		t.Errorf("enabled alice not found: %v", err)
	}

	if _, err := db.Users().FindOne(context.Background(), query.UserUsernameEquals("eve")); !domain.IsDomainError(err, domain.ErrCodeUserNotFound) {
		t.Fatalf("error = %v, want %s", err, domain.ErrCodeUserNotFound)
	}
}

func TestUserEnabledFilter(t *testing.T) {
	db := New()
	bob := seedUser(t, db, "bob", false)

	p := query.And(query.UserIDEquals(bob.ID), query.UserIsEnabled())
	if _, err := db.Users().FindOne(context.Background(), p); !domain.IsDomainError(err, domain.ErrCodeUserNotFound) {
		t.Fatalf("disabled user matched enabled filter: err = %v", err)
	}
}

func TestSessionRepo(t *testing.T) {
	repo := NewSessionRepo()
	ctx := context.Background()

	session := &domain.Session{ID: "s-1", UserID: "u-1"}
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "u-1" {
		t.Errorf("user id = %s, want u-1", got.UserID)
	}

	if err := repo.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "s-1"); err != domain.ErrSessionNotFound {
		t.Fatalf("error = %v, want %v", err, domain.ErrSessionNotFound)
	}
}
