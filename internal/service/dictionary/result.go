package dictionary

import "github.com/wordflow/wordflow-backend/internal/domain"

// AddWordResult reports the outcome of one AddWord call.
type AddWordResult struct {
	WordID int64
	IsNew  bool
}

// WordDetail is a dictionary word with its translations and examples.
type WordDetail struct {
	Word         domain.DictionaryWord
	Translations []domain.Translation
	Examples     []domain.Example
}

// ListResult is one page of a user's dictionary.
type ListResult struct {
	Words      []domain.DictionaryWord
	TotalCount int
}
