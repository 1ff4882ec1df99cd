// Package analysis implements the analysis and highlight repositories using
// PostgreSQL. Highlight rows only link an analysis to a saved dictionary
// word; the analysed payload is never stored.
package analysis

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

// Repo provides analysis persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new analysis repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const createAnalysisSQL = `
INSERT INTO analyses (user_id, original_text, total_highlights, total_words, session_id, ip_address)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, analysis_date`

const createHighlightSQL = `
INSERT INTO highlights (analysis_id, word_id, position)
SELECT $1, $2, COALESCE(MAX(h.position) + 1, 0)
FROM highlights h
WHERE h.analysis_id = $1
RETURNING id, position`

const getAnalysisSQL = `
SELECT a.id, a.user_id, a.original_text, a.analysis_date,
       a.total_highlights, a.total_words, a.session_id, a.ip_address
FROM analyses a
WHERE a.id = $1`

const recentAnalysesSQL = `
SELECT a.id, a.user_id, a.original_text, a.analysis_date,
       a.total_highlights, a.total_words, a.session_id, a.ip_address
FROM analyses a
ORDER BY a.analysis_date DESC
LIMIT $1`

const highlightsByAnalysisSQL = `
SELECT h.id, h.analysis_id, h.word_id, h.position
FROM highlights h
WHERE h.analysis_id = $1
ORDER BY h.position`

const searchByWordSQL = `
SELECT DISTINCT a.id, a.user_id, a.original_text, a.analysis_date,
       a.total_highlights, a.total_words, a.session_id, a.ip_address
FROM analyses a
JOIN highlights h ON h.analysis_id = a.id
JOIN dictionary_words w ON w.id = h.word_id
WHERE lower(w.lemma) = lower($1)
ORDER BY a.analysis_date DESC
LIMIT $2`

const totalsSQL = `
SELECT
    (SELECT COUNT(*) FROM analyses),
    (SELECT COUNT(*) FROM highlights)`

const popularWordsSQL = `
SELECT lower(w.lemma), COUNT(*) AS cnt
FROM highlights h
JOIN dictionary_words w ON w.id = h.word_id
GROUP BY lower(w.lemma)
ORDER BY cnt DESC
LIMIT $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateAnalysis inserts an analysis row and fills ID and AnalysisDate.
func (r *Repo) CreateAnalysis(ctx context.Context, a *domain.Analysis) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createAnalysisSQL,
		a.UserID, a.OriginalText, a.TotalHighlights, a.TotalWords, a.SessionID, a.IPAddress,
	).Scan(&a.ID, &a.AnalysisDate)
	if err != nil {
		return mapError(err, "analysis", 0)
	}

	return nil
}

// CreateHighlight inserts a link row, assigning the next position within the
// analysis, and fills ID and Position.
func (r *Repo) CreateHighlight(ctx context.Context, h *domain.Highlight) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createHighlightSQL,
		h.AnalysisID, h.WordID,
	).Scan(&h.ID, &h.Position)
	if err != nil {
		return mapError(err, "highlight", 0)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one analysis.
func (r *Repo) GetByID(ctx context.Context, analysisID int64) (*domain.Analysis, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getAnalysisSQL, analysisID)

	a, err := scanAnalysisRow(row)
	if err != nil {
		return nil, mapError(err, "analysis", analysisID)
	}

	return &a, nil
}

// Recent returns the newest analyses.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.Analysis, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, recentAnalysesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("recent analyses: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// HighlightsByAnalysis returns the saved-word links of one analysis, in save
// order.
func (r *Repo) HighlightsByAnalysis(ctx context.Context, analysisID int64) ([]domain.Highlight, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, highlightsByAnalysisSQL, analysisID)
	if err != nil {
		return nil, fmt.Errorf("highlights by analysis: %w", err)
	}
	defer rows.Close()

	var highlights []domain.Highlight
	for rows.Next() {
		var h domain.Highlight
		if err := rows.Scan(&h.ID, &h.AnalysisID, &h.WordID, &h.Position); err != nil {
			return nil, fmt.Errorf("highlights by analysis: %w", err)
		}
		highlights = append(highlights, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("highlights by analysis: %w", err)
	}

	if highlights == nil {
		highlights = []domain.Highlight{}
	}

	return highlights, nil
}

// SearchByWord returns analyses whose highlights contain the given word.
func (r *Repo) SearchByWord(ctx context.Context, word string, limit int) ([]domain.Analysis, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, searchByWordSQL, word, limit)
	if err != nil {
		return nil, fmt.Errorf("search analyses by word: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// Stats returns analysis totals and the most frequently highlighted words.
func (r *Repo) Stats(ctx context.Context, popularLimit int) (*domain.AnalysisStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	stats := &domain.AnalysisStats{}
	if err := querier.QueryRow(ctx, totalsSQL).Scan(&stats.TotalAnalyses, &stats.TotalHighlights); err != nil {
		return nil, fmt.Errorf("analysis stats: %w", err)
	}

	rows, err := querier.Query(ctx, popularWordsSQL, popularLimit)
	if err != nil {
		return nil, fmt.Errorf("analysis stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wc domain.WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("analysis stats: %w", err)
		}
		stats.PopularWords = append(stats.PopularWords, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analysis stats: %w", err)
	}

	return stats, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanAnalyses(rows pgx.Rows) ([]domain.Analysis, error) {
	var analyses []domain.Analysis
	for rows.Next() {
		a, err := scanAnalysisRow(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if analyses == nil {
		analyses = []domain.Analysis{}
	}

	return analyses, nil
}

func scanAnalysisRow(row pgx.Row) (domain.Analysis, error) {
	var (
		a         domain.Analysis
		userID    pgtype.Int8
		ipAddress pgtype.Text
	)

	err := row.Scan(
		&a.ID, &userID, &a.OriginalText, &a.AnalysisDate,
		&a.TotalHighlights, &a.TotalWords, &a.SessionID, &ipAddress,
	)
	if err != nil {
		return domain.Analysis{}, err
	}

	if userID.Valid {
		id := userID.Int64
		a.UserID = &id
	}
	if ipAddress.Valid {
		ip := ipAddress.String
		a.IPAddress = &ip
	}

	return a, nil
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
