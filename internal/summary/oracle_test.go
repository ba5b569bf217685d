package summary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestOracle(t *testing.T, handler http.HandlerFunc) *AnthropicOracle {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	oracle, err := NewAnthropicOracle(AnthropicConfig{
		APIKey:    "test-key",
		Model:     "claude-test",
		MaxTokens: 64,
		Timeout:   5 * time.Second,
		BaseURL:   srv.URL + "/",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}
	return oracle
}

func TestAnthropicOracleComplete(t *testing.T) {
	var received struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("api key header missing")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-test",
			"content": [{"type": "text", "text": "On track. "}, {"type": "text", "text": "No risks."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 4}
		}`)
	})

	got, err := oracle.Complete(context.Background(), "status please")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "On track. No risks." {
		t.Fatalf("unexpected text %q", got)
	}
	if received.Model != "claude-test" || received.MaxTokens != 64 {
		t.Fatalf("unexpected request: %+v", received)
	}
	if len(received.Messages) != 1 || received.Messages[0].Role != "user" {
		t.Fatalf("expected one user message, got %+v", received.Messages)
	}
}

func TestAnthropicOracleUpstreamError(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"type": "error", "error": {"type": "invalid_request_error", "message": "bad model"}}`)
	})

	if _, err := oracle.Complete(context.Background(), "status please"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
