// Package memory implements the repositories in process memory, for tests
// and development. Predicates are evaluated directly against the held
// entities, which makes it the reference semantics for the SQL adapter.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/query"
	"github.com/offerdeck/backend/repository"
)

// DB holds offers and users in memory. Listing order is insertion order.
type DB struct {
	mu         sync.RWMutex
	offers     map[string]domain.Offer
	offerOrder []string
	users      map[string]domain.User
	userOrder  []string
}

func New() *DB {
	return &DB{
		offers: make(map[string]domain.Offer),
		users:  make(map[string]domain.User),
	}
}

var _ repository.OfferRepository = (*OfferRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.SessionRepository = (*SessionRepo)(nil)

// Offers returns the offer repository view of the database.
func (db *DB) Offers() *OfferRepo { return &OfferRepo{db: db} }

// Users returns the user repository view of the database.
func (db *DB) Users() *UserRepo { return &UserRepo{db: db} }

type OfferRepo struct {
	db *DB
}

func (r *OfferRepo) FindOne(ctx context.Context, p query.Predicate) (*domain.Offer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, id := range r.db.offerOrder {
		o := r.db.offers[id]
		if r.db.matchOffer(p, &o) {
			return &o, nil
		}
	}
	return nil, domain.NewError(domain.ErrCodeOfferNotFound, "offer not found")
}

func (r *OfferRepo) FindAll(ctx context.Context, p query.Predicate, page repository.Page) ([]domain.Offer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var matched []domain.Offer
	for _, id := range r.db.offerOrder {
		o := r.db.offers[id]
		if r.db.matchOffer(p, &o) {
			matched = append(matched, o)
		}
	}
	return paginate(matched, page), nil
}

func (r *OfferRepo) Count(ctx context.Context, p query.Predicate) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var count int64
	for _, id := range r.db.offerOrder {
		o := r.db.offers[id]
		if r.db.matchOffer(p, &o) {
			count++
		}
	}
	return count, nil
}

func (r *OfferRepo) Save(ctx context.Context, offer *domain.Offer) error {
	if offer == nil || offer.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.offers[offer.ID]; !exists {
		r.db.offerOrder = append(r.db.offerOrder, offer.ID)
	}
	r.db.offers[offer.ID] = *offer
	return nil
}

type UserRepo struct {
	db *DB
}

func (r *UserRepo) FindOne(ctx context.Context, p query.Predicate) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, id := range r.db.userOrder {
		u := r.db.users[id]
		if matchUser(p, &u) {
			return &u, nil
		}
	}
	return nil, domain.NewError(domain.ErrCodeUserNotFound, "user not found")
}

func (r *UserRepo) FindAll(ctx context.Context, p query.Predicate, page repository.Page) ([]domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var matched []domain.User
	for _, id := range r.db.userOrder {
		u := r.db.users[id]
		if matchUser(p, &u) {
			matched = append(matched, u)
		}
	}
	return paginate(matched, page), nil
}

func (r *UserRepo) Count(ctx context.Context, p query.Predicate) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var count int64
	for _, id := range r.db.userOrder {
		u := r.db.users[id]
		if matchUser(p, &u) {
			count++
		}
	}
	return count, nil
}

func (r *UserRepo) Save(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.users[user.ID]; !exists {
		r.db.userOrder = append(r.db.userOrder, user.ID)
	}
	r.db.users[user.ID] = *user
	return nil
}

// SessionRepo is an in-memory session store for tests and development.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *SessionRepo) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *SessionRepo) Extend(ctx context.Context, id string, ttlSeconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	r.sessions[id] = s
	return nil
}

func paginate[T any](items []T, page repository.Page) []T {
	if page.Offset > 0 {
		if page.Offset >= len(items) {
			return nil
		}
		items = items[page.Offset:]
	}
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}
