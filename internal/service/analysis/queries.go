package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
	popularWordsLimit  = 10
)

// RecentAnalyses returns the newest stored analyses.
func (s *Service) RecentAnalyses(ctx context.Context, limit int) ([]domain.Analysis, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	analyses, err := s.analyses.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent analyses: %w", err)
	}
	return analyses, nil
}

// GetAnalysis returns one stored analysis together with its highlights.
func (s *Service) GetAnalysis(ctx context.Context, analysisID int64) (*AnalysisDetail, error) {
	a, err := s.analyses.GetByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	highlights, err := s.analyses.HighlightsByAnalysis(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("analysis highlights: %w", err)
	}

	return &AnalysisDetail{Analysis: *a, Highlights: highlights}, nil
}

// SearchByWord returns analyses whose highlights contain the given word.
func (s *Service) SearchByWord(ctx context.Context, word string, limit int) ([]domain.Analysis, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	analyses, err := s.analyses.SearchByWord(ctx, word, limit)
	if err != nil {
		return nil, fmt.Errorf("search analyses: %w", err)
	}
	return analyses, nil
}

// Stats returns analysis totals and the most highlighted words.
func (s *Service) Stats(ctx context.Context) (*domain.AnalysisStats, error) {
	stats, err := s.analyses.Stats(ctx, popularWordsLimit)
	if err != nil {
		return nil, fmt.Errorf("analysis stats: %w", err)
	}
	return stats, nil
}
