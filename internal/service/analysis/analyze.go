package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wordflow/wordflow-backend/internal/domain"
	"github.com/wordflow/wordflow-backend/internal/lemma"
	"github.com/wordflow/wordflow-backend/internal/provider"
)

// contextFallbackChars bounds the fallback context when no sentence contains
// the highlight.
const contextFallbackChars = 200

// Analyze runs one full analysis: both agents in parallel, enrichment,
// deduplication. Only the run's metadata row is persisted; the highlights
// are returned transiently. A failing agent degrades its side to empty and
// the run itself still succeeds, possibly with zero highlights.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	wordCount := len(strings.Fields(input.Text))
	if wordCount < s.cfg.AnalysisMinWords {
		return nil, domain.NewValidationError("text", fmt.Sprintf("too short (min %d words)", s.cfg.AnalysisMinWords))
	}
	if len(input.Text) > s.cfg.AnalysisMaxChars {
		return nil, domain.NewValidationError("text", fmt.Sprintf("too long (max %d chars)", s.cfg.AnalysisMaxChars))
	}

	s.log.InfoContext(ctx, "analysis started",
		slog.Int("chars", len(input.Text)),
		slog.Int("words", wordCount),
		slog.String("session_id", input.SessionID),
	)

	started := time.Now()
	wordItems, phraseItems := s.callAgents(ctx, input.Text)
	agentsTime := time.Since(started)

	candidates := make([]domain.HighlightCandidate, 0, len(wordItems)+len(phraseItems))
	for _, item := range append(wordItems, phraseItems...) {
		candidates = append(candidates, s.enrich(ctx, item, input.Text))
	}

	deduped, duplications := s.dedup.RemoveDuplicates(candidates)
	deduped = dedupeByLemma(deduped)

	if len(duplications) > 0 {
		s.log.DebugContext(ctx, "duplicates removed",
			slog.Int("before", len(candidates)),
			slog.Int("after", len(deduped)),
		)
	}

	analysis := &domain.Analysis{
		UserID:          input.UserID,
		OriginalText:    input.Text,
		TotalHighlights: len(deduped),
		TotalWords:      wordCount,
		SessionID:       input.SessionID,
		IPAddress:       input.IPAddress,
	}
	if err := s.analyses.CreateAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("create analysis: %w", err)
	}

	s.log.InfoContext(ctx, "analysis finished",
		slog.Int64("analysis_id", analysis.ID),
		slog.Int("highlights", len(deduped)),
	)

	totalTime := time.Since(started)

	return &AnalyzeResult{
		AnalysisID: analysis.ID,
		Highlights: deduped,
		TotalWords: wordCount,
		Performance: Performance{
			WordsAgentResults:   len(wordItems),
			PhrasesAgentResults: len(phraseItems),
			TotalHighlights:     len(deduped),
			AgentsTime:          agentsTime,
			ProcessingTime:      totalTime - agentsTime,
			TotalTime:           totalTime,
		},
	}, nil
}

// callAgents queries the words and phrases agents in parallel. A failed side
// is logged and degraded to an empty slice.
func (s *Service) callAgents(ctx context.Context, text string) ([]provider.AgentHighlight, []provider.AgentHighlight) {
	var (
		wg          sync.WaitGroup
		wordItems   []provider.AgentHighlight
		phraseItems []provider.AgentHighlight
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		wordItems = s.callAgent(ctx, s.wordsAgentID, "words", text)
	}()
	go func() {
		defer wg.Done()
		phraseItems = s.callAgent(ctx, s.phrasesAgentID, "phrases", text)
	}()
	wg.Wait()

	return wordItems, phraseItems
}

func (s *Service) callAgent(ctx context.Context, agentID, side, text string) []provider.AgentHighlight {
	input, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		s.log.ErrorContext(ctx, "marshal agent input", slog.String("side", side), slog.String("error", err.Error()))
		return nil
	}

	payload, err := s.agents.CallAgent(ctx, agentID, string(input))
	if err != nil {
		s.log.ErrorContext(ctx, "agent call failed", slog.String("side", side), slog.String("error", err.Error()))
		return nil
	}

	var items []provider.AgentHighlight
	if err := json.Unmarshal(payload, &items); err != nil {
		s.log.ErrorContext(ctx, "agent payload decode failed", slog.String("side", side), slog.String("error", err.Error()))
		return nil
	}

	valid := items[:0]
	for _, item := range items {
		if strings.TrimSpace(item.Highlight) == "" {
			continue
		}
		valid = append(valid, item)
	}

	return valid
}

// enrich turns one agent item into a candidate: context sentence, lemma,
// dictionary glosses.
func (s *Service) enrich(ctx context.Context, item provider.AgentHighlight, text string) domain.HighlightCandidate {
	lemmaForm := lemma.Lemmatize(item.Highlight)

	cand := domain.HighlightCandidate{
		Highlight:       item.Highlight,
		Lemma:           lemmaForm,
		Context:         extractContext(item.Highlight, text),
		Translation:     item.Translation,
		CEFRLevel:       domain.DefaultCEFRLevel,
		ImportanceScore: domain.DefaultImportanceScore,
	}

	// Agents occasionally return an item without a translation; the machine
	// translation gateway fills the gap so the highlight stays usable.
	if cand.Translation == "" && s.translator != nil {
		translated, err := s.translator.Translate(ctx, item.Highlight)
		if err != nil {
			s.log.WarnContext(ctx, "translate fallback failed", "highlight", item.Highlight, "error", err)
		} else {
			cand.Translation = translated
		}
	}

	// Glosses are fetched for single-token lemmas only; the original surface
	// form is tried first, the lemma as fallback.
	if !strings.Contains(lemmaForm, " ") {
		glosses := s.glosses.Glosses(ctx, item.Highlight)
		if len(glosses) == 0 && !strings.EqualFold(item.Highlight, lemmaForm) {
			glosses = s.glosses.Glosses(ctx, lemmaForm)
		}
		cand.DictionaryMeanings = filterGlosses(glosses, item.Translation)
	}

	return cand
}

// filterGlosses drops glosses that normalise-equal the primary translation.
func filterGlosses(glosses []string, translation string) []string {
	normalized := normalizeGloss(translation)

	var kept []string
	for _, g := range glosses {
		if normalizeGloss(g) == normalized {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}

func normalizeGloss(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// extractContext returns the first sentence containing the highlight
// (case-insensitive), falling back to the start of the text.
func extractContext(word, text string) string {
	normalized := strings.NewReplacer("!", ".", "?", ".").Replace(text)
	wordLower := strings.ToLower(word)

	for _, sentence := range strings.Split(normalized, ".") {
		if strings.Contains(strings.ToLower(sentence), wordLower) {
			return strings.TrimSpace(sentence)
		}
	}

	if len(text) > contextFallbackChars {
		text = text[:contextFallbackChars]
	}
	return strings.TrimSpace(text)
}

// dedupeByLemma keeps the first candidate per lowercase lemma.
func dedupeByLemma(candidates []domain.HighlightCandidate) []domain.HighlightCandidate {
	seen := make(map[string]bool, len(candidates))
	unique := candidates[:0:0]

	for _, cand := range candidates {
		key := strings.ToLower(cand.Lemma)
		if key == "" {
			key = strings.ToLower(cand.Highlight)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, cand)
	}

	return unique
}
