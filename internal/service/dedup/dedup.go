package dedup

import (
	"strings"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// RemoveDuplicates performs a pairwise scan and drops the lower-importance
// side of every duplicate pair (ties drop the later item). Output order
// preserves the input order of survivors. The returned DuplicationInfo list
// is observability only and never affects the result.
func (s *Service) RemoveDuplicates(highlights []domain.HighlightCandidate) ([]domain.HighlightCandidate, []DuplicationInfo) {
	if len(highlights) == 0 {
		return nil, nil
	}

	var duplications []DuplicationInfo
	removed := make(map[int]bool)

	for i := 0; i < len(highlights); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(highlights); j++ {
			if removed[j] {
				continue
			}

			score, simType, ok := checkSimilarity(highlights[i].Highlight, highlights[j].Highlight)
			if !ok {
				continue
			}

			duplications = append(duplications, DuplicationInfo{
				OriginalIndex:  i,
				DuplicateIndex: j,
				Score:          score,
				Type:           simType,
			})

			if highlights[i].ImportanceScore >= highlights[j].ImportanceScore {
				removed[j] = true
				s.log.Debug("dropping duplicate highlight",
					"dropped", highlights[j].Highlight,
					"kept", highlights[i].Highlight,
					"type", string(simType),
				)
			} else {
				removed[i] = true
				s.log.Debug("dropping duplicate highlight",
					"dropped", highlights[i].Highlight,
					"kept", highlights[j].Highlight,
					"type", string(simType),
				)
				// i is gone; the rest of its row is moot.
				break
			}
		}
	}

	clean := make([]domain.HighlightCandidate, 0, len(highlights))
	for i, h := range highlights {
		if !removed[i] {
			clean = append(clean, h)
		}
	}

	return clean, duplications
}

// checkSimilarity classifies a pair, stopping at the first matching class.
func checkSimilarity(a, b string) (float64, SimilarityType, bool) {
	text1 := strings.ToLower(strings.TrimSpace(a))
	text2 := strings.ToLower(strings.TrimSpace(b))

	if text1 == text2 {
		return 1.0, SimilarityExact, true
	}

	if score := morphologicalSimilarity(text1, text2); score >= morphologicalThreshold {
		return score, SimilarityMorphological, true
	}

	if score := semanticSimilarity(text1, text2); score >= semanticThreshold {
		return score, SimilaritySemantic, true
	}

	if strings.Contains(text1, " ") || strings.Contains(text2, " ") {
		if score := partialOverlap(text1, text2); score >= partialThreshold {
			return score, SimilarityPartial, true
		}
	}

	return 0, "", false
}

func morphologicalSimilarity(text1, text2 string) float64 {
	stem1 := wordStem(text1)
	stem2 := wordStem(text2)

	if stem1 == stem2 && len(stem1) > 3 {
		return 0.95
	}
	return similarityRatio(stem1, stem2)
}

func semanticSimilarity(text1, text2 string) float64 {
	for _, group := range semanticGroups {
		if containsWord(group, text1) && containsWord(group, text2) {
			return 0.9
		}
	}

	if strings.Contains(text1, " ") && strings.Contains(text2, " ") {
		words1 := contentTokens(text1)
		words2 := contentTokens(text2)
		if len(words1) > 0 && len(words2) > 0 {
			return jaccard(words1, words2)
		}
	}

	return similarityRatio(text1, text2)
}

func partialOverlap(text1, text2 string) float64 {
	words1 := tokenSet(text1)
	words2 := tokenSet(text2)

	if isSubset(words1, words2) || isSubset(words2, words1) {
		return 0.8
	}

	score := jaccard(words1, words2)

	if wordOrderSimilar(text1, text2) {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// wordOrderSimilar reports whether at least half of the shorter phrase's
// tokens appear in the other phrase at the same or an adjacent position.
func wordOrderSimilar(text1, text2 string) bool {
	words1 := strings.Fields(text1)
	words2 := strings.Fields(text2)

	commonPositions := 0
	for i, w1 := range words1 {
		for j, w2 := range words2 {
			if w1 == w2 && abs(i-j) <= 1 {
				commonPositions++
				break
			}
		}
	}

	shorter := len(words1)
	if len(words2) < shorter {
		shorter = len(words2)
	}
	return float64(commonPositions) >= float64(shorter)*0.5
}

// morphSuffixes are stripped to get a crude stem: walking -> walk.
var morphSuffixes = []string{"ing", "ed", "est", "er", "ly", "s"}

func wordStem(word string) string {
	for _, suffix := range morphSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			return strings.TrimSuffix(word, suffix)
		}
	}
	return word
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		set[w] = true
	}
	return set
}

func contentTokens(text string) map[string]bool {
	set := tokenSet(text)
	for w := range set {
		if phraseStopWords[w] {
			delete(set, w)
		}
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func isSubset(a, b map[string]bool) bool {
	if len(a) == 0 {
		return false
	}
	for w := range a {
		if !b[w] {
			return false
		}
	}
	return true
}

func containsWord(group []string, word string) bool {
	for _, w := range group {
		if w == word {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
