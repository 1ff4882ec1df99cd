package training

import (
	"context"
	"fmt"
	"time"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// SelectWords picks up to count words for a training session. The selection
// cursor rotates through the eight position rules, one word per step,
// skipping duplicates, and is persisted so the next session continues where
// this one stopped.
func (s *Service) SelectWords(ctx context.Context, userID int64, count int) ([]domain.DictionaryWord, error) {
	count = clampCount(count)

	state, err := s.state.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get training state: %w", err)
	}

	startPosition := state.LastSelectionPosition
	position := startPosition

	selected := make([]domain.DictionaryWord, 0, count)
	seen := make(map[int64]bool, count)

	for iterations := 0; len(selected) < count && iterations < maxIterations; iterations++ {
		stepWords, err := s.words.SelectForPosition(ctx, userID, position, 1)
		if err != nil {
			return nil, fmt.Errorf("select words at position %d: %w", position, err)
		}

		for _, w := range stepWords {
			if len(selected) >= count {
				break
			}
			if seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			selected = append(selected, w)
		}

		position = domain.NextSelectionPosition(position)

		// Wrapped back to the start with nothing found on the last step:
		// the dictionary has no more matching words.
		if position == startPosition && len(stepWords) == 0 {
			break
		}
	}

	now := time.Now().UTC()
	state.LastSelectionPosition = position
	state.LastTrainingAt = &now
	if err := s.state.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save training state: %w", err)
	}

	s.log.InfoContext(ctx, "training words selected",
		"user_id", userID,
		"requested", count,
		"selected", len(selected),
		"next_position", position,
	)

	return selected, nil
}

// TranslationForWord returns the word's first stored translation, used as
// the prompt side of a training card.
func (s *Service) TranslationForWord(ctx context.Context, wordID int64) (*domain.Translation, error) {
	tr, err := s.translations.FirstForWord(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("first translation: %w", err)
	}
	return tr, nil
}
