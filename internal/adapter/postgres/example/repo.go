// Package example implements the usage-example repository using PostgreSQL.
package example

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

// Repo provides usage-example persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new example repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByWordIDSQL = `
SELECT e.id, e.word_id, e.original_form, e.context, e.session_id, e.added_at
FROM dictionary_examples e
WHERE e.word_id = $1
ORDER BY e.id`

const createSQL = `
INSERT INTO dictionary_examples (word_id, original_form, context, session_id)
VALUES ($1, $2, $3, $4)
RETURNING id, added_at`

// GetByWordID returns all usage examples of a word, oldest first.
func (r *Repo) GetByWordID(ctx context.Context, wordID int64) ([]domain.Example, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByWordIDSQL, wordID)
	if err != nil {
		return nil, fmt.Errorf("get examples by word_id: %w", err)
	}
	defer rows.Close()

	var examples []domain.Example
	for rows.Next() {
		var (
			ex        domain.Example
			sessionID pgtype.Text
		)
		if err := rows.Scan(&ex.ID, &ex.WordID, &ex.OriginalForm, &ex.Context, &sessionID, &ex.AddedAt); err != nil {
			return nil, fmt.Errorf("get examples by word_id: %w", err)
		}
		if sessionID.Valid {
			s := sessionID.String
			ex.SessionID = &s
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get examples by word_id: %w", err)
	}

	if examples == nil {
		examples = []domain.Example{}
	}

	return examples, nil
}

// Create inserts an example and fills ID and AddedAt.
func (r *Repo) Create(ctx context.Context, ex *domain.Example) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createSQL,
		ex.WordID, ex.OriginalForm, ex.Context, ex.SessionID,
	).Scan(&ex.ID, &ex.AddedAt)
	if err != nil {
		return mapError(err, "example", 0)
	}

	return nil
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
