package generate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestOllama(t *testing.T, h http.HandlerFunc) *OllamaClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	o, err := NewOllamaClient(srv.URL, "llama3", NewLatencyStats(time.Hour))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return o
}

func TestOllamaGenerateStreams(t *testing.T) {
	o := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"model":"llama3","response":"Hel","done":false}` + "\n"))
		w.Write([]byte(`{"model":"llama3","response":"lo","done":true}` + "\n"))
	})

	text, err := o.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello" {
		t.Fatalf("expected Hello, got %q", text)
	}
	if o.Model() != "llama3" {
		t.Fatalf("expected model llama3, got %q", o.Model())
	}
}

func TestOllamaGenerateServerErrorIsRetryable(t *testing.T) {
	o := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{}`))
	})

	_, err := o.Generate(context.Background(), "hi")
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if snap := o.Stats.Snapshot(); snap.Failed != 1 {
		t.Fatalf("expected one failed sample, got %+v", snap)
	}
}
