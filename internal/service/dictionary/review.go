package dictionary

import (
	"context"
	"fmt"
	"time"
)

// UpdateReviewStats records the outcome of one spaced-repetition review.
// A correct answer extends the streak, a wrong one resets it; a streak of
// ten promotes the word to learned.
func (s *Service) UpdateReviewStats(ctx context.Context, userID, wordID int64, correct bool) error {
	w, err := s.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return fmt.Errorf("get word: %w", err)
	}

	w.ApplyReview(correct, time.Now().UTC())

	if err := s.words.UpdateProgress(ctx, w); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	return nil
}
