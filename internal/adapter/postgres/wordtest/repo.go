// Package wordtest implements the test and test-statistics repositories
// using PostgreSQL.
package wordtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordflow/wordflow-backend/internal/adapter/postgres"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

// Repo provides test persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new test repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const testColumns = `
    t.id, t.user_id, t.word_id, t.word, t.correct_translation,
    t.wrong_option_1, t.wrong_option_2, t.wrong_option_3, t.test_mode, t.created_at`

const createTestSQL = `
INSERT INTO tests (user_id, word_id, word, correct_translation,
                   wrong_option_1, wrong_option_2, wrong_option_3, test_mode)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`

const getTestSQL = `
SELECT` + testColumns + `
FROM tests t
WHERE t.id = $1 AND t.user_id = $2`

const listTestsSQL = `
SELECT` + testColumns + `
FROM tests t
WHERE t.user_id = $1
ORDER BY t.created_at`

const countTestsSQL = `
SELECT COUNT(*) FROM tests t WHERE t.user_id = $1`

const deleteTestSQL = `
DELETE FROM tests WHERE id = $1 AND user_id = $2`

const deleteTestsForWordSQL = `
DELETE FROM tests WHERE word_id = $1`

const getStatisticsSQL = `
SELECT s.id, s.user_id, s.word_id, s.total_tests, s.correct_answers,
       s.wrong_answers, s.last_test_at, s.last_result
FROM word_test_statistics s
WHERE s.user_id = $1 AND s.word_id = $2`

const recordResultSQL = `
INSERT INTO word_test_statistics (user_id, word_id, total_tests, correct_answers, wrong_answers, last_test_at, last_result)
VALUES ($1, $2, 1, $3, $4, now(), $5)
ON CONFLICT (user_id, word_id) DO UPDATE
SET total_tests     = word_test_statistics.total_tests + 1,
    correct_answers = word_test_statistics.correct_answers + EXCLUDED.correct_answers,
    wrong_answers   = word_test_statistics.wrong_answers + EXCLUDED.wrong_answers,
    last_test_at    = now(),
    last_result     = EXCLUDED.last_result`

// ---------------------------------------------------------------------------
// Test operations
// ---------------------------------------------------------------------------

// Create inserts a test and fills ID and CreatedAt.
func (r *Repo) Create(ctx context.Context, t *domain.Test) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createTestSQL,
		t.UserID, t.WordID, t.Word, t.CorrectTranslation,
		t.WrongOptions[0], t.WrongOptions[1], t.WrongOptions[2], int(t.Mode),
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return mapError(err, "test", 0)
	}

	return nil
}

// GetByID returns a user's pending test.
func (r *Repo) GetByID(ctx context.Context, userID, testID int64) (*domain.Test, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getTestSQL, testID, userID)

	t, err := scanTestRow(row)
	if err != nil {
		return nil, mapError(err, "test", testID)
	}

	return &t, nil
}

// ListByUser returns all pending tests of a user, oldest first.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]domain.Test, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listTestsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	defer rows.Close()

	var tests []domain.Test
	for rows.Next() {
		t, err := scanTestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list tests: %w", err)
		}
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}

	if tests == nil {
		tests = []domain.Test{}
	}

	return tests, nil
}

// CountByUser returns the number of pending tests of a user.
func (r *Repo) CountByUser(ctx context.Context, userID int64) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countTestsSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tests: %w", err)
	}

	return count, nil
}

// Delete removes a pending test.
func (r *Repo) Delete(ctx context.Context, userID, testID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteTestSQL, testID, userID)
	if err != nil {
		return mapError(err, "test", testID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("test %d: %w", testID, domain.ErrNotFound)
	}

	return nil
}

// DeleteForWord removes all pending tests that reference a word.
func (r *Repo) DeleteForWord(ctx context.Context, wordID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteTestsForWordSQL, wordID); err != nil {
		return mapError(err, "tests for word", wordID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Statistics operations
// ---------------------------------------------------------------------------

// GetStatistics returns the per-word test statistics row.
func (r *Repo) GetStatistics(ctx context.Context, userID, wordID int64) (*domain.TestStatistics, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.TestStatistics
	err := querier.QueryRow(ctx, getStatisticsSQL, userID, wordID).Scan(
		&s.ID, &s.UserID, &s.WordID, &s.TotalTests, &s.CorrectAnswers,
		&s.WrongAnswers, &s.LastTestAt, &s.LastResult,
	)
	if err != nil {
		return nil, mapError(err, "test statistics for word", wordID)
	}

	return &s, nil
}

// RecordResult upserts the per-word statistics row with one answer outcome.
func (r *Repo) RecordResult(ctx context.Context, userID, wordID int64, correct bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	correctInc, wrongInc := 0, 1
	result := domain.TestResultWrong
	if correct {
		correctInc, wrongInc = 1, 0
		result = domain.TestResultCorrect
	}

	if _, err := querier.Exec(ctx, recordResultSQL, userID, wordID, correctInc, wrongInc, result); err != nil {
		return mapError(err, "test statistics for word", wordID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTestRow(row pgx.Row) (domain.Test, error) {
	var (
		t    domain.Test
		mode int
	)

	err := row.Scan(
		&t.ID, &t.UserID, &t.WordID, &t.Word, &t.CorrectTranslation,
		&t.WrongOptions[0], &t.WrongOptions[1], &t.WrongOptions[2], &mode, &t.CreatedAt,
	)
	if err != nil {
		return domain.Test{}, err
	}

	t.Mode = domain.TestMode(mode)

	return t, nil
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
