// Package yandex implements the IAM token exchange for Yandex Cloud APIs.
// A service-account JWT signed with PS256 is traded for a short-lived IAM
// token, which the other Yandex adapters attach as a Bearer header.
package yandex

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

const (
	jwtTTL = time.Hour
	// refreshMargin is subtracted from the token expiry so callers never
	// hold a token about to lapse mid-request.
	refreshMargin = 5 * time.Minute
)

// TokenSource exchanges a signed service-account JWT for an IAM token and
// caches it until shortly before expiry. Safe for concurrent use.
type TokenSource struct {
	endpoint         string
	serviceAccountID string
	keyID            string
	privateKey       *rsa.PrivateKey
	httpClient       *http.Client
	log              *slog.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenSource parses the service-account private key and returns a ready
// token source.
func NewTokenSource(cfg config.YandexConfig, logger *slog.Logger) (*TokenSource, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("yandex iam: parse private key: %w", err)
	}

	return &TokenSource{
		endpoint:         cfg.IAMEndpoint,
		serviceAccountID: cfg.ServiceAccountID,
		keyID:            cfg.KeyID,
		privateKey:       key,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
		log:              logger.With("adapter", "yandex-iam"),
	}, nil
}

// Token returns a valid IAM token, refreshing it when the cached one is
// within refreshMargin of expiry.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiresAt.Add(-refreshMargin)) {
		return s.token, nil
	}

	token, expiresAt, err := s.exchange(ctx)
	if err != nil {
		return "", err
	}

	s.token = token
	s.expiresAt = expiresAt
	s.log.InfoContext(ctx, "iam token refreshed", slog.Time("expires_at", expiresAt))

	return token, nil
}

func (s *TokenSource) exchange(ctx context.Context) (string, time.Time, error) {
	signed, err := s.signJWT()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("yandex iam: sign jwt: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"jwt": signed})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("yandex iam: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/iam/v1/tokens", bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("yandex iam: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("yandex iam: request failed: %w: %w", err, domain.ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("yandex iam: unexpected status %d: %w", resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("yandex iam: read body: %w", err)
	}

	var parsed struct {
		IAMToken  string    `json:"iamToken"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", time.Time{}, fmt.Errorf("yandex iam: decode json: %w", err)
	}
	if parsed.IAMToken == "" {
		return "", time.Time{}, fmt.Errorf("yandex iam: empty token in response: %w", domain.ErrRemoteUnavailable)
	}

	return parsed.IAMToken, parsed.ExpiresAt, nil
}

func (s *TokenSource) signJWT() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.serviceAccountID,
		Audience:  jwt.ClaimStrings{s.endpoint + "/iam/v1/tokens"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(jwtTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodPS256, claims)
	token.Header["kid"] = s.keyID

	return token.SignedString(s.privateKey)
}
