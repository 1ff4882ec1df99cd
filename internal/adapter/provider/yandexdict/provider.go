// Package yandexdict fetches short Russian meanings for English words from
// the Yandex Dictionary API.
package yandexdict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wordflow/wordflow-backend/internal/config"
)

const (
	lookupLang = "en-ru"

	// Meaning selection caps: the first defsLimit senses contribute up to
	// translationsPerDef meanings each, bounded by maxMeanings overall.
	defsLimit          = 2
	translationsPerDef = 2
	maxMeanings        = 3
)

// Provider fetches dictionary meanings from the Yandex Dictionary API.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from configuration.
func NewProvider(cfg config.YandexConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.DictionaryURL,
		apiKey:     cfg.DictionaryAPIKey,
		httpClient: &http.Client{Timeout: cfg.LookupTimeout},
		log:        logger.With("adapter", "yandexdict"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, apiKey string, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "yandexdict"),
	}
}

// Meanings returns up to three short Russian meanings for an English word.
// Phrases are skipped and lookup failures degrade to an empty result:
// dictionary meanings enrich highlights but never block them.
func (p *Provider) Meanings(ctx context.Context, word string) ([]string, error) {
	word = cleanWord(word)
	if word == "" || strings.Contains(word, " ") {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s/lookup?key=%s&lang=%s&text=%s",
		p.baseURL, url.QueryEscape(p.apiKey), lookupLang, url.QueryEscape(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("yandexdict: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("yandexdict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yandexdict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yandexdict: read body: %w", err)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("yandexdict: decode json: %w", err)
	}

	meanings := collectMeanings(parsed)

	p.log.DebugContext(ctx, "lookup response",
		slog.String("word", word),
		slog.Int("meanings", len(meanings)),
	)

	return meanings, nil
}

// collectMeanings walks def[].tr[].text, bounded by the selection caps.
func collectMeanings(parsed lookupResponse) []string {
	var meanings []string

	defs := parsed.Def
	if len(defs) > defsLimit {
		defs = defs[:defsLimit]
	}

	for _, def := range defs {
		taken := 0
		for _, tr := range def.Tr {
			if tr.Text == "" {
				continue
			}
			meanings = append(meanings, tr.Text)
			taken++
			if taken >= translationsPerDef || len(meanings) >= maxMeanings {
				break
			}
		}
		if len(meanings) >= maxMeanings {
			break
		}
	}

	return meanings
}

// cleanWord strips everything but latin letters, spaces, and hyphens.
func cleanWord(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
