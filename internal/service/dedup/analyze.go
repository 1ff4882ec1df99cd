package dedup

import "math"

// DuplicationSummary aggregates detected duplicates for observability.
type DuplicationSummary struct {
	TotalDuplicates   int
	ByType            map[SimilarityType]int
	AverageSimilarity float64
	Recommendations   []string
}

// AnalyzeDuplications summarises a deduplication run. The recommendations
// are heuristic hints for prompt and extraction tuning; they never feed back
// into deduplication itself.
func (s *Service) AnalyzeDuplications(duplications []DuplicationInfo) DuplicationSummary {
	if len(duplications) == 0 {
		return DuplicationSummary{ByType: map[SimilarityType]int{}}
	}

	byType := make(map[SimilarityType]int)
	totalSimilarity := 0.0
	for _, dup := range duplications {
		byType[dup.Type]++
		totalSimilarity += dup.Score
	}

	var recommendations []string
	if byType[SimilarityExact] > 0 {
		recommendations = append(recommendations, "exact duplicates found: check extraction logic")
	}
	if byType[SimilarityMorphological] > 3 {
		recommendations = append(recommendations, "many morphological variants: consider stronger stemming")
	}
	if byType[SimilaritySemantic] > 2 {
		recommendations = append(recommendations, "semantically similar words found: consider tightening the agent prompt")
	}

	return DuplicationSummary{
		TotalDuplicates:   len(duplications),
		ByType:            byType,
		AverageSimilarity: round3(totalSimilarity / float64(len(duplications))),
		Recommendations:   recommendations,
	}
}

// Statistics describes the before/after effect of one deduplication run.
type Statistics struct {
	OriginalCount      int
	FinalCount         int
	RemovedCount       int
	RemovalPercentage  float64
	DuplicationsFound  int
	QualityImprovement string
}

// Statistics builds a snapshot of a completed run.
func (s *Service) Statistics(originalCount, finalCount int, duplications []DuplicationInfo) Statistics {
	removed := originalCount - finalCount
	percentage := 0.0
	if originalCount > 0 {
		percentage = math.Round(float64(removed)/float64(originalCount)*1000) / 10
	}

	return Statistics{
		OriginalCount:      originalCount,
		FinalCount:         finalCount,
		RemovedCount:       removed,
		RemovalPercentage:  percentage,
		DuplicationsFound:  len(duplications),
		QualityImprovement: estimateQualityImprovement(duplications),
	}
}

func estimateQualityImprovement(duplications []DuplicationInfo) string {
	if len(duplications) == 0 {
		return "no_change"
	}

	highSimilarity := 0
	for _, dup := range duplications {
		if dup.Score > 0.9 {
			highSimilarity++
		}
	}

	switch {
	case float64(highSimilarity) >= float64(len(duplications))*0.7:
		return "significant"
	case float64(highSimilarity) >= float64(len(duplications))*0.4:
		return "moderate"
	default:
		return "minor"
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
