// Package user implements the user repository using PostgreSQL.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordflow/wordflow-backend/internal/adapter/postgres"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `
    u.id, u.telegram_id, u.first_name, u.last_name, u.username, u.photo_url,
    u.auth_date, u.created_at, u.last_login_at`

const getByIDSQL = `
SELECT` + userColumns + `
FROM users u
WHERE u.id = $1`

const getByTelegramIDSQL = `
SELECT` + userColumns + `
FROM users u
WHERE u.telegram_id = $1`

const upsertByTelegramIDSQL = `
INSERT INTO users (telegram_id, first_name, last_name, username, photo_url, auth_date, last_login_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (telegram_id) DO UPDATE
SET first_name    = EXCLUDED.first_name,
    last_name     = EXCLUDED.last_name,
    username      = EXCLUDED.username,
    photo_url     = EXCLUDED.photo_url,
    auth_date     = EXCLUDED.auth_date,
    last_login_at = now()
RETURNING id, telegram_id, first_name, last_name, username, photo_url,
          auth_date, created_at, last_login_at,
          (xmax = 0) AS inserted`

// GetByID returns a user by internal ID.
func (r *Repo) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, userID)

	u, err := scanUserRow(row)
	if err != nil {
		return nil, mapError(err, "user", userID)
	}

	return &u, nil
}

// GetByTelegramID returns a user by their Telegram account ID.
func (r *Repo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByTelegramIDSQL, telegramID)

	u, err := scanUserRow(row)
	if err != nil {
		return nil, mapError(err, "user", telegramID)
	}

	return &u, nil
}

// Upsert creates the user on first login or refreshes the profile fields on
// subsequent logins. Returns the stored user and whether the row was created.
func (r *Repo) Upsert(ctx context.Context, u *domain.User) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		lastName pgtype.Text
		username pgtype.Text
		photoURL pgtype.Text
		inserted bool
	)

	err := querier.QueryRow(ctx, upsertByTelegramIDSQL,
		u.TelegramID, u.FirstName, u.LastName, u.Username, u.PhotoURL, u.AuthDate,
	).Scan(
		&u.ID, &u.TelegramID, &u.FirstName, &lastName, &username, &photoURL,
		&u.AuthDate, &u.CreatedAt, &u.LastLoginAt, &inserted,
	)
	if err != nil {
		return false, mapError(err, "user", u.TelegramID)
	}

	u.LastName = textPtr(lastName)
	u.Username = textPtr(username)
	u.PhotoURL = textPtr(photoURL)

	return inserted, nil
}

func scanUserRow(row pgx.Row) (domain.User, error) {
	var (
		u        domain.User
		lastName pgtype.Text
		username pgtype.Text
		photoURL pgtype.Text
	)

	err := row.Scan(
		&u.ID, &u.TelegramID, &u.FirstName, &lastName, &username, &photoURL,
		&u.AuthDate, &u.CreatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.LastName = textPtr(lastName)
	u.Username = textPtr(username)
	u.PhotoURL = textPtr(photoURL)

	return u, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// mapError converts pgx/pgconn errors to domain errors.
func mapError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %d: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrAlreadyExists)
		case "23503":
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
		case "23514":
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %d: %w", entity, id, err)
}
