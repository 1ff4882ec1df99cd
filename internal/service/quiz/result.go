package quiz

import "github.com/wordflow/wordflow-backend/internal/domain"

// CreateTestsResult reports which tests were created in a batch.
type CreateTestsResult struct {
	TestIDs []int64
	// SkippedWordIDs lists words that could not get a test, usually
	// because they have no stored translation.
	SkippedWordIDs []int64
}

// TestView is one test ready to be shown to the user. The correct option is
// mixed into Options and never marked.
type TestView struct {
	TestID  int64
	WordID  int64
	Mode    domain.TestMode
	Prompt  string
	Options [4]string
}

// AnswerResult is the graded outcome of one submitted answer.
type AnswerResult struct {
	IsCorrect          bool
	Word               string
	CorrectTranslation string
	AdditionalMeanings []string
	NewRating          int
	NewStatus          domain.WordStatus
}

// PendingTestsResult lists a user's unanswered tests.
type PendingTestsResult struct {
	Tests []domain.Test
	Count int
}
