// Package quiz implements multiple-choice vocabulary tests: batch creation
// with agent-generated distractors, deterministic option shuffling, and
// answer grading that drives the word mastery state machine.
package quiz

import (
	"context"
	"log/slog"

	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type agentCaller interface {
	CallAgent(ctx context.Context, agentID, input string) ([]byte, error)
}

type testRepo interface {
	Create(ctx context.Context, t *domain.Test) error
	GetByID(ctx context.Context, userID, testID int64) (*domain.Test, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Test, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, userID, testID int64) error
	RecordResult(ctx context.Context, userID, wordID int64, correct bool) error
	GetStatistics(ctx context.Context, userID, wordID int64) (*domain.TestStatistics, error)
}

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error)
	UpdateProgress(ctx context.Context, w *domain.DictionaryWord) error
}

type translationRepo interface {
	FirstForWord(ctx context.Context, wordID int64) (*domain.Translation, error)
	GetByWordID(ctx context.Context, wordID int64) ([]domain.Translation, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the test manager.
type Service struct {
	log          *slog.Logger
	agents       agentCaller
	tests        testRepo
	words        wordRepo
	translations translationRepo
	tx           txManager

	// One distractor agent per test direction.
	distractorAgentIDs map[domain.TestMode]string
}

// NewService creates a new quiz service.
func NewService(
	logger *slog.Logger,
	agents agentCaller,
	tests testRepo,
	words wordRepo,
	translations translationRepo,
	tx txManager,
	yandexCfg config.YandexConfig,
) *Service {
	return &Service{
		log:          logger.With("service", "quiz"),
		agents:       agents,
		tests:        tests,
		words:        words,
		translations: translations,
		tx:           tx,
		distractorAgentIDs: map[domain.TestMode]string{
			domain.TestModeWordToTranslation: yandexCfg.DistractorsEnRuAgentID,
			domain.TestModeTranslationToWord: yandexCfg.DistractorsRuEnAgentID,
		},
	}
}
