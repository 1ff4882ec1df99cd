package yandexgpt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticTokens struct{ token string }

func (s staticTokens) Token(context.Context) (string, error) { return s.token, nil }

func completionBody(text string) string {
	resp := map[string]any{
		"result": map[string]any{
			"alternatives": []map[string]any{
				{"message": map[string]any{"role": "assistant", "text": text}},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestClient_CallAgent_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foundationModels/v1/completion" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer iam-token" {
			t.Errorf("Authorization = %q, want Bearer iam-token", got)
		}

		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ModelURI != "gpt://folder-1/agent-1" {
			t.Errorf("modelUri = %q", req.ModelURI)
		}
		if len(req.Messages) != 1 || req.Messages[0].Text != "analyse this" {
			t.Errorf("messages = %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(`{"highlights":[]}`)))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, "folder-1", staticTokens{token: "iam-token"}, newTestLogger())
	payload, err := c.CallAgent(context.Background(), "agent-1", "analyse this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"highlights":[]}` {
		t.Errorf("payload = %s", payload)
	}
}

func TestClient_CallAgent_StripsCodeFences(t *testing.T) {
	t.Parallel()

	answer := "```json\n{\"items\":[1,2]}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(answer)))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	payload, err := c.CallAgent(context.Background(), "a", "in")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"items":[1,2]}` {
		t.Errorf("payload = %s", payload)
	}
}

func TestClient_CallAgent_JSONSurroundedByProse(t *testing.T) {
	t.Parallel()

	answer := "Here is the result:\n[{\"word\":\"serendipity\"}]\nHope this helps!"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(answer)))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	payload, err := c.CallAgent(context.Background(), "a", "in")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `[{"word":"serendipity"}]` {
		t.Errorf("payload = %s", payload)
	}
}

func TestClient_CallAgent_NoJSONInAnswer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("Sorry, I could not process that text.")))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	_, err := c.CallAgent(context.Background(), "a", "in")
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestClient_CallAgent_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callCount.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// The retried request must carry the body again.
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode retried request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Text != "in" {
			t.Errorf("retried messages = %+v", req.Messages)
		}

		w.Write([]byte(completionBody(`{"ok":true}`)))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	payload, err := c.CallAgent(context.Background(), "a", "in")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"ok":true}` {
		t.Errorf("payload = %s", payload)
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestClient_CallAgent_ServerErrorBothAttemptsFail(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	_, err := c.CallAgent(context.Background(), "a", "in")
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("err = %v, want ErrRemoteUnavailable", err)
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestClient_CallAgent_EmptyAlternatives(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"alternatives":[]}}`))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, "f", staticTokens{token: "t"}, newTestLogger())
	_, err := c.CallAgent(context.Background(), "a", "in")
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "bare object", in: `{"a":1}`, want: `{"a":1}`, ok: true},
		{name: "bare array", in: `[1,2]`, want: `[1,2]`, ok: true},
		{name: "array before object", in: `[{"a":1}] trailing`, want: `[{"a":1}]`, ok: true},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`, ok: true},
		{name: "prose only", in: "no json here", ok: false},
		{name: "unbalanced", in: `{"a":1`, ok: false},
		{name: "empty", in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := extractJSON(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
