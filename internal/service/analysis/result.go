package analysis

import (
	"time"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// Performance carries the per-run counters and timings of one analysis.
type Performance struct {
	WordsAgentResults   int
	PhrasesAgentResults int
	TotalHighlights     int
	AgentsTime          time.Duration
	ProcessingTime      time.Duration
	TotalTime           time.Duration
}

// AnalyzeResult is the transient outcome of one analysis run. Highlights are
// candidates only; none of them is persisted until the user saves it.
type AnalyzeResult struct {
	AnalysisID  int64
	Highlights  []domain.HighlightCandidate
	TotalWords  int
	Performance Performance
}

// AnalysisDetail pairs a stored analysis with its highlights.
type AnalysisDetail struct {
	Analysis   domain.Analysis
	Highlights []domain.Highlight
}
