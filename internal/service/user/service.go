// Package user implements the Telegram login boundary: payload signature
// verification and user profile upsert.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) (bool, error)
}

// Service implements Telegram identity management.
type Service struct {
	log            *slog.Logger
	users          userRepo
	botToken       string
	authDateMaxAge time.Duration
	now            func() time.Time
}

// NewService creates a new user service.
func NewService(logger *slog.Logger, users userRepo, cfg config.TelegramConfig) *Service {
	return &Service{
		log:            logger.With("service", "user"),
		users:          users,
		botToken:       cfg.BotToken,
		authDateMaxAge: cfg.AuthDateMaxAge,
		now:            time.Now,
	}
}

// GetUser returns a user by internal ID.
func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GetUserByTelegramID returns a user by their Telegram account ID.
func (s *Service) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}
