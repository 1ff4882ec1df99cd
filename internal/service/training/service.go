// Package training implements the rotating word selector for training
// sessions. Words are picked one per cursor position, cycling through eight
// selection rules until the requested count is reached.
package training

import (
	"context"
	"log/slog"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	SelectForPosition(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error)
}

type translationRepo interface {
	FirstForWord(ctx context.Context, wordID int64) (*domain.Translation, error)
}

type stateRepo interface {
	Get(ctx context.Context, userID int64) (*domain.TrainingState, error)
	Save(ctx context.Context, s *domain.TrainingState) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

const (
	defaultCount = 8
	maxCount     = 50

	// Hard cap on selector iterations so a sparse dictionary cannot spin
	// the cursor forever.
	maxIterations = 20
)

// Service implements training word selection.
type Service struct {
	log          *slog.Logger
	words        wordRepo
	translations translationRepo
	state        stateRepo
}

// NewService creates a new training service.
func NewService(logger *slog.Logger, words wordRepo, translations translationRepo, state stateRepo) *Service {
	return &Service{
		log:          logger.With("service", "training"),
		words:        words,
		translations: translations,
		state:        state,
	}
}

func clampCount(count int) int {
	if count <= 0 {
		return defaultCount
	}
	if count > maxCount {
		return maxCount
	}
	return count
}
