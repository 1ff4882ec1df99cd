package dictionary

import (
	"context"
	"fmt"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// ListWords returns one page of the user's dictionary. Filter defaults and
// limits are applied by the repository.
func (s *Service) ListWords(ctx context.Context, userID int64, f domain.WordFilter) (*ListResult, error) {
	words, total, err := s.words.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	return &ListResult{
		Words:      words,
		TotalCount: total,
	}, nil
}
