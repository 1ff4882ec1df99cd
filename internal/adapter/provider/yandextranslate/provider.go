// Package yandextranslate translates English text into Russian using the
// Yandex Translate v2 API. It backs the fallback path when a highlight
// arrives without a translation from the analysis agents.
package yandextranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

const (
	sourceLang = "en"
	targetLang = "ru"
)

// TokenProvider supplies a valid IAM token for each request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Provider translates text via the Yandex Translate API.
type Provider struct {
	baseURL    string
	folderID   string
	tokens     TokenProvider
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from configuration.
func NewProvider(cfg config.YandexConfig, tokens TokenProvider, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.TranslateURL,
		folderID:   cfg.FolderID,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: cfg.LookupTimeout},
		log:        logger.With("adapter", "yandextranslate"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, folderID string, tokens TokenProvider, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		folderID:   folderID,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "yandextranslate"),
	}
}

// Translate returns the Russian translation of an English text.
func (p *Provider) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	token, err := p.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("yandextranslate: obtain iam token: %w", err)
	}

	payload, err := json.Marshal(translateRequest{
		FolderID:           p.folderID,
		SourceLanguageCode: sourceLang,
		TargetLanguageCode: targetLang,
		Texts:              []string{text},
	})
	if err != nil {
		return "", fmt.Errorf("yandextranslate: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("yandextranslate: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "translate failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("yandextranslate: request failed: %w: %w", err, domain.ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yandextranslate: unexpected status %d: %w", resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("yandextranslate: read body: %w", err)
	}

	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("yandextranslate: decode json: %w", err)
	}
	if len(parsed.Translations) == 0 {
		return "", fmt.Errorf("yandextranslate: empty translations: %w", domain.ErrRemoteUnavailable)
	}

	translated := parsed.Translations[0].Text

	p.log.DebugContext(ctx, "translate response",
		slog.Int("text_len", len(text)),
		slog.Int("result_len", len(translated)),
	)

	return translated, nil
}
