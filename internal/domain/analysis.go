package domain

import "time"

// Defaults applied to highlights until per-word difficulty scoring exists.
const (
	DefaultCEFRLevel       = "C1"
	DefaultImportanceScore = 85
)

// Analysis is one stored text-analysis run.
type Analysis struct {
	ID              int64
	UserID          *int64
	OriginalText    string
	AnalysisDate    time.Time
	TotalHighlights int
	TotalWords      int
	SessionID       string
	IPAddress       *string
}

// Highlight links a stored analysis to a dictionary word the user saved
// from it. Analysis results themselves are transient; a link row appears
// only on an explicit save.
type Highlight struct {
	ID         int64
	AnalysisID int64
	WordID     int64
	Position   int
}

// HighlightCandidate is an in-flight highlight before deduplication and
// persistence. Lemma is filled during enrichment.
type HighlightCandidate struct {
	Highlight          string
	Lemma              string
	Context            string
	Translation        string
	CEFRLevel          string
	ImportanceScore    int
	DictionaryMeanings []string
}

// AnalysisStats aggregates stored analyses.
type AnalysisStats struct {
	TotalAnalyses   int
	TotalHighlights int
	PopularWords    []WordCount
}

// WordCount pairs a highlighted word with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}
