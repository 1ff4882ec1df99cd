// Package translation implements the translation repository using PostgreSQL.
package translation

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

// Repo provides translation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new translation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByWordIDSQL = `
SELECT t.id, t.word_id, t.translation, t.source_session_id, t.added_at
FROM dictionary_translations t
WHERE t.word_id = $1
ORDER BY t.id`

const firstForWordSQL = `
SELECT t.id, t.word_id, t.translation, t.source_session_id, t.added_at
FROM dictionary_translations t
WHERE t.word_id = $1
ORDER BY t.id
LIMIT 1`

const existsForWordSQL = `
SELECT COUNT(*)
FROM dictionary_translations t
WHERE t.word_id = $1 AND t.translation = $2`

const createSQL = `
INSERT INTO dictionary_translations (word_id, translation, source_session_id)
VALUES ($1, $2, $3)
RETURNING id, added_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByWordID returns all translations of a word, oldest first.
func (r *Repo) GetByWordID(ctx context.Context, wordID int64) ([]domain.Translation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByWordIDSQL, wordID)
	if err != nil {
		return nil, fmt.Errorf("get translations by word_id: %w", err)
	}
	defer rows.Close()

	translations, err := scanTranslations(rows)
	if err != nil {
		return nil, fmt.Errorf("get translations by word_id: %w", err)
	}

	return translations, nil
}

// FirstForWord returns the oldest translation of a word, or domain.ErrNotFound
// when the word has none.
func (r *Repo) FirstForWord(ctx context.Context, wordID int64) (*domain.Translation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, firstForWordSQL, wordID)

	tr, err := scanTranslationRow(row)
	if err != nil {
		return nil, mapError(err, "translation for word", wordID)
	}

	return &tr, nil
}

// ExistsForWord reports whether the word already has this exact translation.
func (r *Repo) ExistsForWord(ctx context.Context, wordID int64, text string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, existsForWordSQL, wordID, text).Scan(&count); err != nil {
		return false, fmt.Errorf("translation exists: %w", err)
	}

	return count > 0, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a translation and fills ID and AddedAt.
func (r *Repo) Create(ctx context.Context, tr *domain.Translation) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createSQL,
		tr.WordID, tr.Translation, tr.SourceSessionID,
	).Scan(&tr.ID, &tr.AddedAt)
	if err != nil {
		return mapError(err, "translation", 0)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTranslations(rows pgx.Rows) ([]domain.Translation, error) {
	var translations []domain.Translation
	for rows.Next() {
		tr, err := scanTranslationRow(rows)
		if err != nil {
			return nil, err
		}
		translations = append(translations, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if translations == nil {
		translations = []domain.Translation{}
	}

	return translations, nil
}

func scanTranslationRow(row pgx.Row) (domain.Translation, error) {
	var (
		tr        domain.Translation
		sessionID pgtype.Text
	)

	err := row.Scan(&tr.ID, &tr.WordID, &tr.Translation, &sessionID, &tr.AddedAt)
	if err != nil {
		return domain.Translation{}, err
	}

	if sessionID.Valid {
		s := sessionID.String
		tr.SourceSessionID = &s
	}

	return tr, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

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
