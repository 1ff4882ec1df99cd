// Package yandexgpt calls Yandex AI Studio agents over the foundation-models
// completion API. Agents answer with JSON embedded in free-form model text;
// the client extracts and validates that JSON before handing it to callers.
package yandexgpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

const (
	completionPath = "/foundationModels/v1/completion"

	defaultTemperature = 0.3
	defaultMaxTokens   = "2000"
)

// TokenProvider supplies a valid IAM token for each request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client calls Yandex AI Studio agents.
type Client struct {
	baseURL    string
	folderID   string
	tokens     TokenProvider
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client using the configured endpoint and timeout.
func New(cfg config.YandexConfig, tokens TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.GPTEndpoint,
		folderID:   cfg.FolderID,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: cfg.AgentTimeout},
		log:        logger.With("adapter", "yandexgpt"),
	}
}

// NewWithURL creates a Client with a custom base URL (for testing).
func NewWithURL(baseURL, folderID string, tokens TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		folderID:   folderID,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		log:        logger.With("adapter", "yandexgpt"),
	}
}

// CallAgent sends the input to one agent and returns the JSON payload
// extracted from the model answer. The payload is validated with json.Valid;
// unmarshalling into the agent contract is up to the caller.
func (c *Client) CallAgent(ctx context.Context, agentID, input string) ([]byte, error) {
	text, err := c.complete(ctx, agentID, input)
	if err != nil {
		return nil, err
	}

	payload, ok := extractJSON(text)
	if !ok {
		c.log.ErrorContext(ctx, "agent returned no parsable json",
			slog.String("agent_id", agentID),
			slog.Int("answer_len", len(text)),
		)
		return nil, fmt.Errorf("yandexgpt: agent %s returned no parsable json: %w", agentID, domain.ErrRemoteUnavailable)
	}

	return payload, nil
}

func (c *Client) complete(ctx context.Context, agentID, input string) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("yandexgpt: obtain iam token: %w", err)
	}

	reqBody := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", c.folderID, agentID),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		},
		Messages: []completionMessage{
			{Role: "user", Text: input},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("yandexgpt: marshal request: %w", err)
	}

	c.log.DebugContext(ctx, "agent request", slog.String("agent_id", agentID), slog.Int("input_len", len(input)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("yandexgpt: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	// Correlates the call with Yandex Cloud request logs.
	req.Header.Set("x-client-request-id", uuid.NewString())

	resp, err := c.doWithRetry(ctx, req, payload, agentID)
	if err != nil {
		c.log.ErrorContext(ctx, "agent request failed", slog.String("agent_id", agentID), slog.String("error", err.Error()))
		return "", fmt.Errorf("yandexgpt: request failed: %w: %w", err, domain.ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yandexgpt: unexpected status %d: %w", resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("yandexgpt: read body: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("yandexgpt: decode json: %w", err)
	}
	if len(parsed.Result.Alternatives) == 0 {
		return "", fmt.Errorf("yandexgpt: empty alternatives: %w", domain.ErrRemoteUnavailable)
	}

	text := parsed.Result.Alternatives[0].Message.Text

	c.log.DebugContext(ctx, "agent response",
		slog.String("agent_id", agentID),
		slog.Int("answer_len", len(text)),
	)

	return text, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, payload []byte, agentID string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "agent retry", slog.String("agent_id", agentID), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retry := req.Clone(ctx)
	retry.Body = io.NopCloser(bytes.NewReader(payload))

	return c.httpClient.Do(retry)
}

// extractJSON pulls the first JSON object or array out of model text.
// Markdown code fences are stripped first; the result is bounded by the
// first opening brace/bracket and the last matching closing one.
func extractJSON(text string) ([]byte, bool) {
	text = stripCodeFences(text)

	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start := objStart
	end := strings.LastIndexByte(text, '}')
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start = arrStart
		end = strings.LastIndexByte(text, ']')
	}

	if start == -1 || end == -1 || end <= start {
		return nil, false
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, false
	}

	return candidate, true
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}
