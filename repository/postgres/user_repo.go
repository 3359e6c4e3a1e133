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

const userSelect = "u.id, u.username, u.encoded_password, u.enabled, u.create_time"

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) FindOne(ctx context.Context, p query.Predicate) (*domain.User, error) {
	sql, args, err := buildUserQuery("SELECT "+userSelect, p)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, sql+" LIMIT 1", args...)
	return scanUser(row)
}

func (r *userRepository) FindAll(ctx context.Context, p query.Predicate, page repository.Page) ([]domain.User, error) {
	sql, args, err := buildUserQuery("SELECT "+userSelect, p)
	if err != nil {
		return nil, err
	}

	sql += fmt.Sprintf(" ORDER BY u.create_time, u.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, clampLimit(page.Limit), page.Offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context, p query.Predicate) (int64, error) {
	sql, args, err := buildUserQuery("SELECT COUNT(*)", p)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	const sql = `
	INSERT INTO users (id, username, encoded_password, enabled, create_time)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET encoded_password = EXCLUDED.encoded_password,
		enabled = EXCLUDED.enabled
	`

	_, err := r.pool.Exec(ctx, sql,
		user.ID,
		user.Username,
		user.EncodedPassword,
		user.Enabled,
		user.CreateTime,
	)
	return err
}

func buildUserQuery(selectClause string, p query.Predicate) (string, []any, error) {
	var args []any
	where, err := compilePredicate(p, userColumns, &args)
	if err != nil {
		return "", nil, err
	}
	return selectClause + " FROM users u WHERE " + where, args, nil
}

func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.EncodedPassword,
		&user.Enabled,
		&user.CreateTime,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewError(domain.ErrCodeUserNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}
