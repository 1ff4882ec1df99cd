package quiz

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// GetTest returns a test with its four options shuffled. The shuffle is
// seeded from the test itself, so repeated fetches of the same test show
// the options in the same order.
func (s *Service) GetTest(ctx context.Context, userID, testID int64) (*TestView, error) {
	test, err := s.tests.GetByID(ctx, userID, testID)
	if err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}

	prompt, correct := promptAndCorrect(test)

	options := [4]string{correct, test.WrongOptions[0], test.WrongOptions[1], test.WrongOptions[2]}
	shuffleOptions(&options, shuffleSeed(test))

	return &TestView{
		TestID:  test.ID,
		WordID:  test.WordID,
		Mode:    test.Mode,
		Prompt:  prompt,
		Options: options,
	}, nil
}

// promptAndCorrect splits a test into the shown prompt and the correct
// option for its mode.
func promptAndCorrect(t *domain.Test) (prompt, correct string) {
	if t.Mode == domain.TestModeTranslationToWord {
		return t.CorrectTranslation, t.Word
	}
	return t.Word, t.CorrectTranslation
}

// shuffleSeed derives a stable per-test seed from the row identity.
func shuffleSeed(t *domain.Test) int64 {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatInt(t.ID, 10)))
	h.Write([]byte(strconv.FormatInt(t.CreatedAt.Unix(), 10)))
	h.Write([]byte(t.Word))
	return int64(h.Sum64())
}

func shuffleOptions(options *[4]string, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}
