package domain

import "time"

// WordType distinguishes single words from multi-word expressions.
type WordType string

const (
	WordTypeWord       WordType = "word"
	WordTypeExpression WordType = "expression"
)

func (t WordType) String() string { return string(t) }

func (t WordType) IsValid() bool {
	switch t {
	case WordTypeWord, WordTypeExpression:
		return true
	}
	return false
}

// WordStatus is the mastery state of a dictionary word.
type WordStatus string

const (
	WordStatusNew      WordStatus = "new"
	WordStatusLearning WordStatus = "learning"
	WordStatusLearned  WordStatus = "learned"
)

func (s WordStatus) String() string { return string(s) }

func (s WordStatus) IsValid() bool {
	switch s {
	case WordStatusNew, WordStatusLearning, WordStatusLearned:
		return true
	}
	return false
}

const (
	// MaxRating is the rating at which a word is considered mastered.
	MaxRating = 10
	// MasteryStreak is the correct-review streak that promotes a word to learned.
	MasteryStreak = 10
)

// DictionaryWord is a word or phrase in a user's personal dictionary.
type DictionaryWord struct {
	ID               int64
	UserID           int64
	Lemma            string
	Type             WordType
	Status           WordStatus
	AddedAt          time.Time
	LastReviewedAt   *time.Time
	ReviewCount      int
	CorrectStreak    int
	Rating           int
	LastRatingChange *time.Time
}

// ApplyTestAnswer advances the mastery state machine after a test answer.
// Any answer moves a new word to learning. A correct answer increments the
// rating (capped at MaxRating) and promotes to learned when the cap is
// reached. A wrong answer resets the rating to zero and demotes a learned
// word back to learning.
func (w *DictionaryWord) ApplyTestAnswer(correct bool, now time.Time) {
	if w.Status == WordStatusNew {
		w.Status = WordStatusLearning
	}

	if correct {
		if w.Rating < MaxRating {
			w.Rating++
		}
		if w.Rating >= MaxRating {
			w.Status = WordStatusLearned
		}
	} else {
		w.Rating = 0
		if w.Status == WordStatusLearned {
			w.Status = WordStatusLearning
		}
	}

	w.LastRatingChange = &now
	w.LastReviewedAt = &now
	w.ReviewCount++
}

// ApplyReview updates streak-based review statistics. The first review of a
// new word moves it to learning; a streak of MasteryStreak correct reviews
// promotes it to learned.
func (w *DictionaryWord) ApplyReview(correct bool, now time.Time) {
	firstReview := w.ReviewCount == 0

	w.ReviewCount++
	if correct {
		w.CorrectStreak++
	} else {
		w.CorrectStreak = 0
	}

	if w.CorrectStreak >= MasteryStreak {
		w.Status = WordStatusLearned
	} else if firstReview && w.Status == WordStatusNew {
		w.Status = WordStatusLearning
	}

	w.LastReviewedAt = &now
}

// Translation is one Russian rendering of a dictionary word.
type Translation struct {
	ID              int64
	WordID          int64
	Translation     string
	SourceSessionID *string
	AddedAt         time.Time
}

// Example is a usage example captured when the word was highlighted.
type Example struct {
	ID           int64
	WordID       int64
	OriginalForm string
	Context      string
	SessionID    *string
	AddedAt      time.Time
}

// WordFilter defines parameters for listing a user's dictionary words.
type WordFilter struct {
	// Status filters by mastery status.
	Status *WordStatus

	// Type filters by word/phrase.
	Type *WordType

	// Search matches a substring of the lemma, case-insensitively.
	Search *string

	// SortBy determines the sort column: "lemma", "added_at", "rating".
	// Default: "added_at".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "DESC".
	SortOrder string

	// Limit is the maximum number of words to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of words to skip.
	Offset int
}

// DictionaryStats summarizes a user's dictionary.
type DictionaryStats struct {
	TotalWords   int
	Words        int
	Expressions  int
	StatusCounts map[WordStatus]int
}
