// Package dictionary implements the personal-dictionary business logic:
// idempotent word intake from highlights, listing, status management, and
// review statistics.
package dictionary

import (
	"context"
	"log/slog"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error)
	GetByLemma(ctx context.Context, userID int64, lemma string) (*domain.DictionaryWord, error)
	List(ctx context.Context, userID int64, f domain.WordFilter) ([]domain.DictionaryWord, int, error)
	Create(ctx context.Context, w *domain.DictionaryWord) error
	UpdateProgress(ctx context.Context, w *domain.DictionaryWord) error
	UpdateStatus(ctx context.Context, userID, wordID int64, status domain.WordStatus) error
	Delete(ctx context.Context, userID, wordID int64) error
	Stats(ctx context.Context, userID int64) (*domain.DictionaryStats, error)
}

type translationRepo interface {
	GetByWordID(ctx context.Context, wordID int64) ([]domain.Translation, error)
	ExistsForWord(ctx context.Context, wordID int64, text string) (bool, error)
	Create(ctx context.Context, tr *domain.Translation) error
}

type exampleRepo interface {
	GetByWordID(ctx context.Context, wordID int64) ([]domain.Example, error)
	Create(ctx context.Context, ex *domain.Example) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the dictionary business logic.
type Service struct {
	log          *slog.Logger
	words        wordRepo
	translations translationRepo
	examples     exampleRepo
	tx           txManager
}

// NewService creates a new dictionary service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	translations translationRepo,
	examples exampleRepo,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "dictionary"),
		words:        words,
		translations: translations,
		examples:     examples,
		tx:           tx,
	}
}
