package quiz

import (
	"context"
	"fmt"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// PendingTests lists the user's unanswered tests.
func (s *Service) PendingTests(ctx context.Context, userID int64) (*PendingTestsResult, error) {
	tests, err := s.tests.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}

	return &PendingTestsResult{
		Tests: tests,
		Count: len(tests),
	}, nil
}

// PendingCount returns only the number of unanswered tests.
func (s *Service) PendingCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.tests.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count tests: %w", err)
	}
	return count, nil
}

// WordStatistics returns the accumulated test outcomes for one word.
func (s *Service) WordStatistics(ctx context.Context, userID, wordID int64) (*domain.TestStatistics, error) {
	stats, err := s.tests.GetStatistics(ctx, userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("word statistics: %w", err)
	}
	return stats, nil
}
