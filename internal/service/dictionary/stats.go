package dictionary

import (
	"context"
	"fmt"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// Stats returns dictionary size counters broken down by type and status.
func (s *Service) Stats(ctx context.Context, userID int64) (*domain.DictionaryStats, error) {
	stats, err := s.words.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dictionary stats: %w", err)
	}
	return stats, nil
}
