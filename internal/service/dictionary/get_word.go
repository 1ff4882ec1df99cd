package dictionary

import (
	"context"
	"fmt"
)

// GetWord returns a word with all its translations and usage examples.
func (s *Service) GetWord(ctx context.Context, userID, wordID int64) (*WordDetail, error) {
	w, err := s.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	translations, err := s.translations.GetByWordID(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("get translations: %w", err)
	}

	examples, err := s.examples.GetByWordID(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("get examples: %w", err)
	}

	return &WordDetail{
		Word:         *w,
		Translations: translations,
		Examples:     examples,
	}, nil
}
