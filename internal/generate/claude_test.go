package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClaude(t *testing.T, h http.HandlerFunc) *ClaudeClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClaudeClient("test-key", "test-model", NewLatencyStats(time.Hour))
	c.baseURL = srv.URL
	return c
}

func TestClaudeGenerate(t *testing.T) {
	c := newTestClaude(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("x-api-key"))
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"Hi "},{"type":"tool_use"},{"type":"text","text":"there"}]}`))
	})

	text, err := c.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hi there" {
		t.Fatalf("expected %q, got %q", "Hi there", text)
	}
	if snap := c.Stats.Snapshot(); snap.Count != 1 || snap.Failed != 0 {
		t.Fatalf("expected one successful sample, got %+v", snap)
	}
}

func TestClaudeGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		retryable bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, true},
		{"server error", http.StatusBadGateway, `oops`, true},
		{"bad request", http.StatusBadRequest, `{"error":{"type":"invalid","message":"no"}}`, false},
		{"api error body", http.StatusOK, `{"error":{"type":"overloaded","message":"try later"}}`, false},
		{"empty content", http.StatusOK, `{"content":[]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClaude(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.Generate(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if IsRetryable(err) != tt.retryable {
				t.Fatalf("expected retryable=%v, got %v (%v)", tt.retryable, IsRetryable(err), err)
			}
			if snap := c.Stats.Snapshot(); snap.Failed != 1 {
				t.Fatalf("expected one failed sample, got %+v", snap)
			}
		})
	}
}
