// Package analysis orchestrates one text-analysis run: two LLM agents are
// queried in parallel for words and phrases, their answers are enriched with
// lemmas and dictionary glosses and deduplicated. Results are transient; only
// the run's metadata is recorded, and a highlight link appears when the user
// saves a candidate into the dictionary.
package analysis

import (
	"context"
	"log/slog"

	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/domain"
	"github.com/wordflow/wordflow-backend/internal/service/dedup"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type agentCaller interface {
	CallAgent(ctx context.Context, agentID, input string) ([]byte, error)
}

type glossGateway interface {
	Glosses(ctx context.Context, word string) []string
}

type translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

type deduplicator interface {
	RemoveDuplicates(highlights []domain.HighlightCandidate) ([]domain.HighlightCandidate, []dedup.DuplicationInfo)
}

type analysisRepo interface {
	CreateAnalysis(ctx context.Context, a *domain.Analysis) error
	CreateHighlight(ctx context.Context, h *domain.Highlight) error
	GetByID(ctx context.Context, analysisID int64) (*domain.Analysis, error)
	Recent(ctx context.Context, limit int) ([]domain.Analysis, error)
	HighlightsByAnalysis(ctx context.Context, analysisID int64) ([]domain.Highlight, error)
	SearchByWord(ctx context.Context, word string, limit int) ([]domain.Analysis, error)
	Stats(ctx context.Context, popularLimit int) (*domain.AnalysisStats, error)
}

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the analysis orchestration logic.
type Service struct {
	log        *slog.Logger
	agents     agentCaller
	glosses    glossGateway
	translator translator
	dedup      deduplicator
	analyses   analysisRepo
	words      wordRepo
	tx         txManager

	wordsAgentID   string
	phrasesAgentID string
	cfg            config.EngineConfig
}

// NewService creates a new analysis service.
func NewService(
	logger *slog.Logger,
	agents agentCaller,
	glosses glossGateway,
	translator translator,
	dedup deduplicator,
	analyses analysisRepo,
	words wordRepo,
	tx txManager,
	yandexCfg config.YandexConfig,
	engineCfg config.EngineConfig,
) *Service {
	return &Service{
		log:            logger.With("service", "analysis"),
		agents:         agents,
		glosses:        glosses,
		translator:     translator,
		dedup:          dedup,
		analyses:       analyses,
		words:          words,
		tx:             tx,
		wordsAgentID:   yandexCfg.WordsAgentID,
		phrasesAgentID: yandexCfg.PhrasesAgentID,
		cfg:            engineCfg,
	}
}
