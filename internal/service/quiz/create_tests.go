package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wordflow/wordflow-backend/internal/domain"
	"github.com/wordflow/wordflow-backend/internal/provider"
)

const wrongOptionsPerTest = 3

type testCandidate struct {
	wordID      int64
	word        string
	translation string
}

type distractorWord struct {
	Word               string `json:"word"`
	CorrectTranslation string `json:"correct_translation"`
}

// CreateTests creates one multiple-choice test per word. Words without a
// stored translation are skipped. Wrong options come from the distractor
// agent for the requested direction; the correct answer always comes from
// the local translation, never from the agent. A word whose options do not
// form four distinct strings is dropped rather than served with a broken
// test. There is no offline substitute for distractors, so an agent failure
// fails the whole call.
func (s *Service) CreateTests(ctx context.Context, in CreateTestsInput) (*CreateTestsResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		candidates []testCandidate
		result     CreateTestsResult
	)

	for _, wordID := range in.WordIDs {
		w, err := s.words.GetByID(ctx, in.UserID, wordID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result.SkippedWordIDs = append(result.SkippedWordIDs, wordID)
				continue
			}
			return nil, fmt.Errorf("get word %d: %w", wordID, err)
		}

		tr, err := s.translations.FirstForWord(ctx, wordID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result.SkippedWordIDs = append(result.SkippedWordIDs, wordID)
				continue
			}
			return nil, fmt.Errorf("first translation for word %d: %w", wordID, err)
		}

		candidates = append(candidates, testCandidate{
			wordID:      wordID,
			word:        w.Lemma,
			translation: tr.Translation,
		})
	}

	if len(candidates) == 0 {
		return &result, nil
	}

	distractors, err := s.generateDistractors(ctx, in.Mode, candidates)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		options, ok := pickOptions(c, in.Mode, distractors[strings.ToLower(c.word)])
		if !ok {
			s.log.WarnContext(ctx, "dropping test with non-distinct options",
				"user_id", in.UserID, "word_id", c.wordID)
			result.SkippedWordIDs = append(result.SkippedWordIDs, c.wordID)
			continue
		}

		test := domain.Test{
			UserID:             in.UserID,
			WordID:             c.wordID,
			Word:               c.word,
			CorrectTranslation: c.translation,
			WrongOptions:       options,
			Mode:               in.Mode,
		}
		if err := s.tests.Create(ctx, &test); err != nil {
			return nil, fmt.Errorf("create test: %w", err)
		}
		result.TestIDs = append(result.TestIDs, test.ID)
	}

	s.log.InfoContext(ctx, "tests created",
		"user_id", in.UserID,
		"created", len(result.TestIDs),
		"skipped", len(result.SkippedWordIDs),
	)

	return &result, nil
}

// CreateDualModeTests splits the words in half and creates word-to-translation
// tests for the first half and translation-to-word tests for the second.
func (s *Service) CreateDualModeTests(ctx context.Context, userID int64, wordIDs []int64) (*CreateTestsResult, error) {
	if len(wordIDs) == 0 {
		return nil, domain.NewValidationErrors([]domain.FieldError{
			{Field: "word_ids", Message: "required"},
		})
	}

	var merged CreateTestsResult

	halves := []struct {
		ids  []int64
		mode domain.TestMode
	}{
		{wordIDs[:len(wordIDs)/2], domain.TestModeWordToTranslation},
		{wordIDs[len(wordIDs)/2:], domain.TestModeTranslationToWord},
	}

	for _, h := range halves {
		if len(h.ids) == 0 {
			continue
		}
		res, err := s.CreateTests(ctx, CreateTestsInput{UserID: userID, WordIDs: h.ids, Mode: h.mode})
		if err != nil {
			return nil, err
		}
		merged.TestIDs = append(merged.TestIDs, res.TestIDs...)
		merged.SkippedWordIDs = append(merged.SkippedWordIDs, res.SkippedWordIDs...)
	}

	return &merged, nil
}

// generateDistractors asks the direction's distractor agent for wrong options
// for the whole batch at once and keys the result by lowercase word.
func (s *Service) generateDistractors(ctx context.Context, mode domain.TestMode, candidates []testCandidate) (map[string][]string, error) {
	agentID := s.distractorAgentIDs[mode]
	if agentID == "" {
		return nil, fmt.Errorf("no distractor agent for mode %d: %w", mode, domain.ErrRemoteUnavailable)
	}

	words := make([]distractorWord, 0, len(candidates))
	for _, c := range candidates {
		words = append(words, distractorWord{Word: c.word, CorrectTranslation: c.translation})
	}

	payload, err := json.Marshal(words)
	if err != nil {
		return nil, fmt.Errorf("marshal distractor request: %w", err)
	}

	raw, err := s.agents.CallAgent(ctx, agentID, string(payload))
	if err != nil {
		return nil, fmt.Errorf("distractor agent: %w", err)
	}

	var resp provider.DistractorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("malformed distractor payload: %w: %w", err, domain.ErrRemoteUnavailable)
	}

	byWord := make(map[string][]string, len(resp.Tests))
	for _, set := range resp.Tests {
		byWord[strings.ToLower(set.Word)] = set.WrongOptions
	}
	return byWord, nil
}

// pickOptions takes the first three wrong options for one test and reports
// whether they form four distinct non-blank answers together with the
// correct one.
func pickOptions(c testCandidate, mode domain.TestMode, wrong []string) ([3]string, bool) {
	correct := c.translation
	if mode == domain.TestModeTranslationToWord {
		correct = c.word
	}

	if len(wrong) < wrongOptionsPerTest {
		return [3]string{}, false
	}

	seen := map[string]bool{strings.ToLower(correct): true}

	var out [3]string
	for i := 0; i < wrongOptionsPerTest; i++ {
		opt := strings.TrimSpace(wrong[i])
		key := strings.ToLower(opt)
		if opt == "" || seen[key] {
			return [3]string{}, false
		}
		seen[key] = true
		out[i] = opt
	}
	return out, true
}
