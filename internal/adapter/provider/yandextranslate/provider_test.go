package yandextranslate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticTokens struct{ token string }

func (s staticTokens) Token(context.Context) (string, error) { return s.token, nil }

func TestProvider_Translate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer iam-token" {
			t.Errorf("Authorization = %q", got)
		}

		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.FolderID != "folder-1" {
			t.Errorf("folderId = %q", req.FolderID)
		}
		if req.SourceLanguageCode != "en" || req.TargetLanguageCode != "ru" {
			t.Errorf("langs = %q -> %q", req.SourceLanguageCode, req.TargetLanguageCode)
		}
		if len(req.Texts) != 1 || req.Texts[0] != "serendipity" {
			t.Errorf("texts = %v", req.Texts)
		}

		w.Write([]byte(`{"translations":[{"text":"счастливая случайность","detectedLanguageCode":"en"}]}`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "folder-1", staticTokens{token: "iam-token"}, newTestLogger())
	got, err := p.Translate(context.Background(), "serendipity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "счастливая случайность" {
		t.Errorf("Translate = %q", got)
	}
}

func TestProvider_Translate_EmptyInput(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty input must not hit the API")
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	got, err := p.Translate(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("Translate = %q, want empty", got)
	}
}

func TestProvider_Translate_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	_, err := p.Translate(context.Background(), "word")
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestProvider_Translate_EmptyTranslations(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"translations":[]}`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	_, err := p.Translate(context.Background(), "word")
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestProvider_Translate_TokenError(t *testing.T) {
	t.Parallel()

	p := NewProviderWithURL("http://unused", "f", failingTokens{}, newTestLogger())
	if _, err := p.Translate(context.Background(), "word"); err == nil {
		t.Fatal("expected error when token source fails")
	}
}

type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) {
	return "", errors.New("iam unavailable")
}
