package dictionary

import (
	"context"
	"fmt"
)

// DeleteWord removes a word from the user's dictionary. Translations,
// examples, highlight links, pending tests and statistics rows are removed
// by the database cascade.
func (s *Service) DeleteWord(ctx context.Context, userID, wordID int64) error {
	if err := s.words.Delete(ctx, userID, wordID); err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	s.log.InfoContext(ctx, "word deleted", "user_id", userID, "word_id", wordID)

	return nil
}
