// Package word implements the dictionary-word repository using PostgreSQL.
package word

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

// Repo provides dictionary-word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dictionary-word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const wordColumns = `
    w.id, w.user_id, w.lemma, w.type, w.status, w.added_at,
    w.last_reviewed_at, w.review_count, w.correct_streak, w.rating, w.last_rating_change`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.id = $1 AND w.user_id = $2`

const getByLemmaSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.user_id = $1 AND w.lemma = $2`

const createSQL = `
INSERT INTO dictionary_words (user_id, lemma, type, status)
VALUES ($1, $2, $3, $4)
RETURNING id, added_at`

const updateProgressSQL = `
UPDATE dictionary_words
SET status = $3,
    rating = $4,
    review_count = $5,
    correct_streak = $6,
    last_reviewed_at = $7,
    last_rating_change = $8
WHERE id = $1 AND user_id = $2`

const updateStatusSQL = `
UPDATE dictionary_words
SET status = $3
WHERE id = $1 AND user_id = $2`

const deleteSQL = `
DELETE FROM dictionary_words
WHERE id = $1 AND user_id = $2`

const statsSQL = `
SELECT w.type, w.status, COUNT(*)
FROM dictionary_words w
WHERE w.user_id = $1
GROUP BY w.type, w.status`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user's word by ID.
func (r *Repo) GetByID(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, wordID, userID)

	w, err := scanWordRow(row)
	if err != nil {
		return nil, mapError(err, "word", wordID)
	}

	return &w, nil
}

// GetByLemma returns a user's word by its lemma, or domain.ErrNotFound.
func (r *Repo) GetByLemma(ctx context.Context, userID int64, lemma string) (*domain.DictionaryWord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByLemmaSQL, userID, lemma)

	w, err := scanWordRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("word %q: %w", lemma, domain.ErrNotFound)
		}
		return nil, mapError(err, "word", 0)
	}

	return &w, nil
}

// Stats aggregates a user's dictionary by type and status.
func (r *Repo) Stats(ctx context.Context, userID int64) (*domain.DictionaryStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, statsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("word stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.DictionaryStats{
		StatusCounts: make(map[domain.WordStatus]int),
	}
	for rows.Next() {
		var (
			typ    string
			status string
			count  int
		)
		if err := rows.Scan(&typ, &status, &count); err != nil {
			return nil, fmt.Errorf("word stats: %w", err)
		}
		stats.TotalWords += count
		switch domain.WordType(typ) {
		case domain.WordTypeExpression:
			stats.Expressions += count
		default:
			stats.Words += count
		}
		stats.StatusCounts[domain.WordStatus(status)] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("word stats: %w", err)
	}

	return stats, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new word and fills ID and AddedAt from the database.
func (r *Repo) Create(ctx context.Context, w *domain.DictionaryWord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createSQL,
		w.UserID, w.Lemma, string(w.Type), string(w.Status),
	).Scan(&w.ID, &w.AddedAt)
	if err != nil {
		return mapError(err, "word", 0)
	}

	return nil
}

// UpdateProgress persists the mastery fields of a word after a review or
// test answer.
func (r *Repo) UpdateProgress(ctx context.Context, w *domain.DictionaryWord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateProgressSQL,
		w.ID, w.UserID, string(w.Status), w.Rating, w.ReviewCount,
		w.CorrectStreak, w.LastReviewedAt, w.LastRatingChange,
	)
	if err != nil {
		return mapError(err, "word", w.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %d: %w", w.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateStatus sets the mastery status only.
func (r *Repo) UpdateStatus(ctx context.Context, userID, wordID int64, status domain.WordStatus) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStatusSQL, wordID, userID, string(status))
	if err != nil {
		return mapError(err, "word", wordID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %d: %w", wordID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a word. Translations, examples, highlight links, tests, and
// statistics rows go with it via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, userID, wordID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, wordID, userID)
	if err != nil {
		return mapError(err, "word", wordID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %d: %w", wordID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanWords(rows pgx.Rows) ([]domain.DictionaryWord, error) {
	var words []domain.DictionaryWord
	for rows.Next() {
		w, err := scanWordFromRows(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if words == nil {
		words = []domain.DictionaryWord{}
	}

	return words, nil
}

func scanWordFromRows(rows pgx.Rows) (domain.DictionaryWord, error) {
	return scanWordRow(rows)
}

func scanWordRow(row pgx.Row) (domain.DictionaryWord, error) {
	var (
		w                domain.DictionaryWord
		typ              string
		status           string
		lastReviewedAt   pgtype.Timestamptz
		lastRatingChange pgtype.Timestamptz
	)

	err := row.Scan(
		&w.ID, &w.UserID, &w.Lemma, &typ, &status, &w.AddedAt,
		&lastReviewedAt, &w.ReviewCount, &w.CorrectStreak, &w.Rating, &lastRatingChange,
	)
	if err != nil {
		return domain.DictionaryWord{}, err
	}

	w.Type = domain.WordType(typ)
	w.Status = domain.WordStatus(status)
	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time
		w.LastReviewedAt = &t
	}
	if lastRatingChange.Valid {
		t := lastRatingChange.Time
		w.LastRatingChange = &t
	}

	return w, nil
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
		case "23505": // unique_violation
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %d: %w", entity, id, err)
}
