// Package dedup removes near-duplicate highlight candidates before they
// reach the user. Similarity is checked in a fixed order (exact,
// morphological, semantic, partial phrase overlap) and the first matching
// class decides the pair's fate.
package dedup

import "log/slog"

// SimilarityType classifies why two highlights were considered duplicates.
type SimilarityType string

const (
	SimilarityExact         SimilarityType = "exact_duplicate"
	SimilarityMorphological SimilarityType = "morphological"
	SimilaritySemantic      SimilarityType = "semantic"
	SimilarityPartial       SimilarityType = "partial_overlap"
)

// Similarity thresholds per class.
const (
	semanticThreshold      = 0.8
	morphologicalThreshold = 0.85
	partialThreshold       = 0.6
)

// DuplicationInfo records one detected duplicate pair.
type DuplicationInfo struct {
	OriginalIndex  int
	DuplicateIndex int
	Score          float64
	Type           SimilarityType
}

// Service implements highlight deduplication.
type Service struct {
	log *slog.Logger
}

// NewService creates a new deduplication service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		log: logger.With("service", "dedup"),
	}
}

// semanticGroups are curated synonym clusters; two single words inside the
// same cluster score 0.9.
var semanticGroups = [][]string{
	{"big", "large", "huge", "massive", "enormous", "giant", "vast"},
	{"small", "tiny", "little", "minimal", "minor", "compact"},
	{"good", "excellent", "great", "wonderful", "fantastic", "amazing"},
	{"bad", "terrible", "awful", "horrible", "poor", "dreadful"},
	{"fast", "quick", "rapid", "swift", "speedy", "hasty"},
	{"slow", "sluggish", "gradual", "delayed", "leisurely"},
	{"smart", "intelligent", "clever", "brilliant", "wise", "bright"},
	{"important", "crucial", "vital", "essential", "critical", "significant"},
	{"easy", "simple", "effortless", "straightforward", "basic"},
	{"difficult", "hard", "challenging", "complex", "tough", "demanding"},
}

// phraseStopWords are excluded from phrase-overlap comparisons.
var phraseStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "with": true, "by": true,
}
