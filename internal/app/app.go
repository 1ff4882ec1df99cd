// Package app wires configuration, storage, external gateways and services
// into a running application.
package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordflow/wordflow-backend/internal/adapter/postgres"
	analysisrepo "github.com/wordflow/wordflow-backend/internal/adapter/postgres/analysis"
	examplerepo "github.com/wordflow/wordflow-backend/internal/adapter/postgres/example"
	trainingstaterepo "github.com/wordflow/wordflow-backend/internal/adapter/postgres/trainingstate"
	translationrepo "github.com/wordflow/wordflow-backend/internal/adapter/postgres/translation"
	userrepo "github.com/wordflow/wordflow-backend/internal/adapter/postgres/user"
	wordrepo "github.com/wordflow/wordflow-backend/internal/adapter/postgres/word"
	wordtestrepo "github.com/wordflow/wordflow-backend/internal/adapter/postgres/wordtest"
	"github.com/wordflow/wordflow-backend/internal/adapter/provider/yandex"
	"github.com/wordflow/wordflow-backend/internal/adapter/provider/yandexdict"
	"github.com/wordflow/wordflow-backend/internal/adapter/provider/yandexgpt"
	"github.com/wordflow/wordflow-backend/internal/adapter/provider/yandextranslate"
	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/service/analysis"
	"github.com/wordflow/wordflow-backend/internal/service/dedup"
	"github.com/wordflow/wordflow-backend/internal/service/dictionary"
	"github.com/wordflow/wordflow-backend/internal/service/meaning"
	"github.com/wordflow/wordflow-backend/internal/service/quiz"
	"github.com/wordflow/wordflow-backend/internal/service/training"
	"github.com/wordflow/wordflow-backend/internal/service/user"
)

// Services bundles the constructed business-logic layer. Transport layers
// (bot, HTTP) attach on top of this struct.
type Services struct {
	Analysis   *analysis.Service
	Dictionary *dictionary.Service
	Training   *training.Service
	Quiz       *quiz.Service
	User       *user.Service
}

// Run is the application entry point. It loads configuration, applies
// migrations, builds the service graph, and blocks until the context is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := RunMigrations(ctx, logger, cfg.Database.DSN); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if _, err := BuildServices(pool, cfg, logger); err != nil {
		return err
	}

	logger.Info("application started")
	<-ctx.Done()
	logger.Info("shutting down")

	return nil
}

// BuildServices constructs repositories, gateways and services on top of an
// existing pool.
func BuildServices(pool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	tx := postgres.NewTxManager(pool)

	words := wordrepo.New(pool)
	translations := translationrepo.New(pool)
	examples := examplerepo.New(pool)
	users := userrepo.New(pool)
	analyses := analysisrepo.New(pool)
	trainingState := trainingstaterepo.New(pool)
	tests := wordtestrepo.New(pool)

	tokens, err := yandex.NewTokenSource(cfg.Yandex, logger)
	if err != nil {
		return nil, err
	}

	gpt := yandexgpt.New(cfg.Yandex, tokens, logger)
	dict := yandexdict.NewProvider(cfg.Yandex, logger)
	translate := yandextranslate.NewProvider(cfg.Yandex, tokens, logger)

	glosses := meaning.NewGateway(logger, dict)
	deduper := dedup.NewService(logger)

	return &Services{
		Analysis:   analysis.NewService(logger, gpt, glosses, translate, deduper, analyses, words, tx, cfg.Yandex, cfg.Engine),
		Dictionary: dictionary.NewService(logger, words, translations, examples, tx),
		Training:   training.NewService(logger, words, translations, trainingState),
		Quiz:       quiz.NewService(logger, gpt, tests, words, translations, tx, cfg.Yandex),
		User:       user.NewService(logger, users, cfg.Telegram),
	}, nil
}
