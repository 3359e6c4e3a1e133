package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/query"
	"github.com/offerdeck/backend/repository"
)

const offerSelect = "o.id, o.title, o.description, o.price, o.currency, o.create_time, o.end_time, o.cancelled, o.publisher_id"

type offerRepository struct {
	pool *pgxpool.Pool
}

// NewOfferRepository returns a Postgres-backed implementation of OfferRepository.
func NewOfferRepository(pool *pgxpool.Pool) repository.OfferRepository {
	return &offerRepository{pool: pool}
}

func (r *offerRepository) FindOne(ctx context.Context, p query.Predicate) (*domain.Offer, error) {
	sql, args, err := buildOfferQuery("SELECT "+offerSelect, p)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, sql+" LIMIT 1", args...)
	return scanOffer(row)
}

func (r *offerRepository) FindAll(ctx context.Context, p query.Predicate, page repository.Page) ([]domain.Offer, error) {
	sql, args, err := buildOfferQuery("SELECT "+offerSelect, p)
	if err != nil {
		return nil, err
	}

	// Insertion-order-stable listing: creation time with id as tiebreaker.
	sql += fmt.Sprintf(" ORDER BY o.create_time, o.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, clampLimit(page.Limit), page.Offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}
	return offers, rows.Err()
}

func (r *offerRepository) Count(ctx context.Context, p query.Predicate) (int64, error) {
	sql, args, err := buildOfferQuery("SELECT COUNT(*)", p)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *offerRepository) Save(ctx context.Context, offer *domain.Offer) error {
	if offer == nil || offer.ID == "" {
		return domain.ErrInvalidPayload
	}

	const sql = `
	INSERT INTO offers (id, title, description, price, currency, create_time, end_time, cancelled, publisher_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE
	SET title = EXCLUDED.title,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		currency = EXCLUDED.currency,
		end_time = EXCLUDED.end_time,
		cancelled = EXCLUDED.cancelled
	`

	_, err := r.pool.Exec(ctx, sql,
		offer.ID,
		offer.Title,
		offer.Description,
		offer.Price,
		offer.Currency,
		offer.CreateTime,
		offer.EndTime,
		offer.Cancelled,
		offer.PublisherID,
	)
	return err
}

// buildOfferQuery assembles the FROM and WHERE clauses for an offer
// predicate, joining users only when the publisher's username is addressed.
func buildOfferQuery(selectClause string, p query.Predicate) (string, []any, error) {
	var args []any
	where, err := compilePredicate(p, offerColumns, &args)
	if err != nil {
		return "", nil, err
	}

	from := " FROM offers o"
	if p.References(query.OfferPublisherUsername) {
		from += " JOIN users u ON u.id = o.publisher_id"
	}
	return selectClause + from + " WHERE " + where, args, nil
}

func scanOffer(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Offer, error) {
	var offer domain.Offer
	if err := row.Scan(
		&offer.ID,
		&offer.Title,
		&offer.Description,
		&offer.Price,
		&offer.Currency,
		&offer.CreateTime,
		&offer.EndTime,
		&offer.Cancelled,
		&offer.PublisherID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewError(domain.ErrCodeOfferNotFound, "offer not found")
		}
		return nil, err
	}
	return &offer, nil
}
