package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// AddWord saves a highlight into the user's dictionary. Adding a lemma that
// already exists merges the translations instead of failing: the main
// translation and each additional meaning are inserted only when an equal
// text is not already stored, while the usage example is always appended.
func (s *Service) AddWord(ctx context.Context, in AddWordInput) (*AddWordResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// Lemmas are stored lowercase with collapsed whitespace so repeated
	// saves of the same word always hit the same row.
	lemma := domain.NormalizeText(in.Lemma)

	var result AddWordResult

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.words.GetByLemma(ctx, in.UserID, lemma)
		switch {
		case err == nil:
			result.WordID = existing.ID
			result.IsNew = false
			return s.mergeWord(ctx, existing.ID, in)
		case errors.Is(err, domain.ErrNotFound):
			id, err := s.createWord(ctx, lemma, in)
			if err != nil {
				return err
			}
			result.WordID = id
			result.IsNew = true
			return nil
		default:
			return fmt.Errorf("get word by lemma: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "word added",
		"user_id", in.UserID,
		"word_id", result.WordID,
		"is_new", result.IsNew,
	)

	return &result, nil
}

// mergeWord adds the incoming translations to an existing word, skipping ones
// already stored, and records the new usage example.
func (s *Service) mergeWord(ctx context.Context, wordID int64, in AddWordInput) error {
	for _, text := range append([]string{in.MainTranslation}, in.AdditionalMeanings...) {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		exists, err := s.translations.ExistsForWord(ctx, wordID, text)
		if err != nil {
			return fmt.Errorf("check translation: %w", err)
		}
		if exists {
			continue
		}

		if err := s.createTranslation(ctx, wordID, text, in.SessionID); err != nil {
			return err
		}
	}

	return s.createExample(ctx, wordID, in)
}

// createWord inserts a brand-new word with all its translations and the
// usage example.
func (s *Service) createWord(ctx context.Context, lemma string, in AddWordInput) (int64, error) {
	w := domain.DictionaryWord{
		UserID: in.UserID,
		Lemma:  lemma,
		Type:   in.resolveType(),
		Status: domain.WordStatusNew,
	}
	if err := s.words.Create(ctx, &w); err != nil {
		return 0, fmt.Errorf("create word: %w", err)
	}

	for _, text := range append([]string{in.MainTranslation}, in.AdditionalMeanings...) {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if err := s.createTranslation(ctx, w.ID, text, in.SessionID); err != nil {
			return 0, err
		}
	}

	if err := s.createExample(ctx, w.ID, in); err != nil {
		return 0, err
	}

	return w.ID, nil
}

func (s *Service) createTranslation(ctx context.Context, wordID int64, text, sessionID string) error {
	tr := domain.Translation{
		WordID:          wordID,
		Translation:     text,
		SourceSessionID: optional(sessionID),
	}
	if err := s.translations.Create(ctx, &tr); err != nil {
		return fmt.Errorf("create translation: %w", err)
	}
	return nil
}

func (s *Service) createExample(ctx context.Context, wordID int64, in AddWordInput) error {
	originalForm := strings.TrimSpace(in.OriginalForm)
	if originalForm == "" {
		originalForm = strings.TrimSpace(in.Lemma)
	}

	ex := domain.Example{
		WordID:       wordID,
		OriginalForm: originalForm,
		Context:      strings.TrimSpace(in.Context),
		SessionID:    optional(in.SessionID),
	}
	if err := s.examples.Create(ctx, &ex); err != nil {
		return fmt.Errorf("create example: %w", err)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
