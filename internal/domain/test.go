package domain

import "time"

// TestMode selects the direction of a multiple-choice test.
type TestMode int

const (
	// TestModeWordToTranslation shows the English word, options are Russian.
	TestModeWordToTranslation TestMode = 1
	// TestModeTranslationToWord shows the Russian translation, options are English.
	TestModeTranslationToWord TestMode = 2
)

func (m TestMode) IsValid() bool {
	return m == TestModeWordToTranslation || m == TestModeTranslationToWord
}

// Test is a pending multiple-choice test. Tests are ephemeral: a test is
// deleted in the same transaction that records its answer.
type Test struct {
	ID                 int64
	UserID             int64
	WordID             int64
	Word               string
	CorrectTranslation string
	WrongOptions       [3]string
	Mode               TestMode
	CreatedAt          time.Time
}

// Answer-outcome labels stored in test statistics.
const (
	TestResultCorrect = "correct"
	TestResultWrong   = "wrong"
)

// TestStatistics accumulates per-word test outcomes.
type TestStatistics struct {
	ID             int64
	UserID         int64
	WordID         int64
	TotalTests     int
	CorrectAnswers int
	WrongAnswers   int
	LastTestAt     time.Time
	LastResult     string
}
