// Package trainingstate implements the training-cursor repository using
// PostgreSQL.
package trainingstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordflow/wordflow-backend/internal/adapter/postgres"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

// Repo provides training-state persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new training-state repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT s.user_id, s.last_selection_position, s.last_training_at
FROM user_training_state s
WHERE s.user_id = $1`

const upsertSQL = `
INSERT INTO user_training_state (user_id, last_selection_position, last_training_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET last_selection_position = EXCLUDED.last_selection_position,
    last_training_at        = EXCLUDED.last_training_at`

// Get returns the user's selection cursor. A user who has never trained gets
// the default state (position 1) without an error.
func (r *Repo) Get(ctx context.Context, userID int64) (*domain.TrainingState, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		s              domain.TrainingState
		lastTrainingAt pgtype.Timestamptz
	)

	err := querier.QueryRow(ctx, getSQL, userID).Scan(
		&s.UserID, &s.LastSelectionPosition, &lastTrainingAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.TrainingState{
			UserID:                userID,
			LastSelectionPosition: domain.FirstSelectionPosition,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get training state: %w", err)
	}

	if lastTrainingAt.Valid {
		t := lastTrainingAt.Time
		s.LastTrainingAt = &t
	}

	return &s, nil
}

// Save upserts the user's selection cursor.
func (r *Repo) Save(ctx context.Context, s *domain.TrainingState) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var lastTrainingAt *time.Time
	if s.LastTrainingAt != nil {
		lastTrainingAt = s.LastTrainingAt
	}

	if _, err := querier.Exec(ctx, upsertSQL, s.UserID, s.LastSelectionPosition, lastTrainingAt); err != nil {
		return fmt.Errorf("save training state: %w", err)
	}

	return nil
}
