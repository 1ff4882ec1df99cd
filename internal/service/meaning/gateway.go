// Package meaning resolves short Russian glosses for English words and
// phrases. It sits between the analysis orchestrator and the dictionary
// provider: primitive tokens are suppressed, phrases are split into
// concurrent per-token lookups, and every failure degrades to an empty
// result so glosses never block an analysis.
package meaning

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/wordflow/wordflow-backend/internal/lemma"
)

// maxGlosses caps the combined gloss list for a phrase.
const maxGlosses = 5

type lookupProvider interface {
	Meanings(ctx context.Context, word string) ([]string, error)
}

// Gateway resolves glosses with primitive-word suppression.
type Gateway struct {
	log      *slog.Logger
	provider lookupProvider
}

// NewGateway creates a gloss gateway over a dictionary provider.
func NewGateway(logger *slog.Logger, provider lookupProvider) *Gateway {
	return &Gateway{
		log:      logger.With("service", "meaning"),
		provider: provider,
	}
}

// Glosses returns an ordered list of short Russian glosses for a word or
// phrase. It never returns an error: lookup failures are logged and yield an
// empty list.
func (g *Gateway) Glosses(ctx context.Context, word string) []string {
	tokens := strings.Fields(word)

	switch len(tokens) {
	case 0:
		return nil
	case 1:
		if lemma.IsPrimitive(tokens[0]) {
			return nil
		}
		return g.lookup(ctx, tokens[0])
	}

	return g.phraseGlosses(ctx, tokens)
}

// phraseGlosses looks up every non-primitive sub-token concurrently and
// concatenates the glosses in first-occurrence token order.
func (g *Gateway) phraseGlosses(ctx context.Context, tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var lookups []string
	for _, token := range tokens {
		lowered := strings.ToLower(token)
		if lemma.IsPrimitive(token) || seen[lowered] {
			continue
		}
		seen[lowered] = true
		lookups = append(lookups, token)
	}
	if len(lookups) == 0 {
		return nil
	}

	results := make([][]string, len(lookups))
	var wg sync.WaitGroup
	for i, token := range lookups {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			results[i] = g.lookup(ctx, token)
		}(i, token)
	}
	wg.Wait()

	var glosses []string
	for _, r := range results {
		glosses = append(glosses, r...)
		if len(glosses) >= maxGlosses {
			glosses = glosses[:maxGlosses]
			break
		}
	}

	return glosses
}

func (g *Gateway) lookup(ctx context.Context, token string) []string {
	glosses, err := g.provider.Meanings(ctx, token)
	if err != nil {
		g.log.WarnContext(ctx, "gloss lookup failed",
			slog.String("token", token),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return glosses
}
