package dictionary

import (
	"context"
	"fmt"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// UpdateStatus sets a word's mastery status directly, bypassing the rating
// state machine.
func (s *Service) UpdateStatus(ctx context.Context, userID, wordID int64, status domain.WordStatus) error {
	if !status.IsValid() {
		return domain.NewValidationErrors([]domain.FieldError{
			{Field: "status", Message: "invalid"},
		})
	}

	if err := s.words.UpdateStatus(ctx, userID, wordID, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	return nil
}
