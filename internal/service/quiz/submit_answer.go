package quiz

import (
	"context"
	"fmt"
	"time"
)

// SubmitAnswer grades one answer. The mastery update, the statistics upsert
// and the test deletion happen in a single transaction, so a test can never
// be answered twice.
func (s *Service) SubmitAnswer(ctx context.Context, userID, testID int64, answer string) (*AnswerResult, error) {
	var result AnswerResult

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		test, err := s.tests.GetByID(ctx, userID, testID)
		if err != nil {
			return fmt.Errorf("get test: %w", err)
		}

		_, correct := promptAndCorrect(test)
		isCorrect := answer == correct

		word, err := s.words.GetByID(ctx, userID, test.WordID)
		if err != nil {
			return fmt.Errorf("get word: %w", err)
		}

		word.ApplyTestAnswer(isCorrect, time.Now().UTC())

		if err := s.words.UpdateProgress(ctx, word); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}
		if err := s.tests.RecordResult(ctx, userID, test.WordID, isCorrect); err != nil {
			return fmt.Errorf("record result: %w", err)
		}
		if err := s.tests.Delete(ctx, userID, testID); err != nil {
			return fmt.Errorf("delete test: %w", err)
		}

		translations, err := s.translations.GetByWordID(ctx, test.WordID)
		if err != nil {
			return fmt.Errorf("get translations: %w", err)
		}

		result = AnswerResult{
			IsCorrect:          isCorrect,
			Word:               test.Word,
			CorrectTranslation: test.CorrectTranslation,
			NewRating:          word.Rating,
			NewStatus:          word.Status,
		}
		for _, tr := range translations {
			if tr.Translation != test.CorrectTranslation {
				result.AdditionalMeanings = append(result.AdditionalMeanings, tr.Translation)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "answer submitted",
		"user_id", userID,
		"test_id", testID,
		"correct", result.IsCorrect,
		"new_status", string(result.NewStatus),
	)

	return &result, nil
}
