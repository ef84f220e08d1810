package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type scriptedGenerator struct {
	errs  []error
	calls int
}

func (s *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok: " + prompt, nil
}

func (s *scriptedGenerator) Model() string { return "scripted" }

func noBackoff(int) time.Duration { return 0 }

func TestRetryingSucceedsAfterTransientErrors(t *testing.T) {
	g := &scriptedGenerator{errs: []error{
		&RetryableError{StatusCode: 503, Message: "busy"},
		&RetryableError{StatusCode: 429, Message: "slow down"},
	}}
	r := NewRetrying(g, nil)
	r.backoff = noBackoff

	text, err := r.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok: hi" {
		t.Fatalf("expected %q, got %q", "ok: hi", text)
	}
	if g.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", g.calls)
	}
}

func TestRetryingGivesUp(t *testing.T) {
	retry := &RetryableError{StatusCode: 500, Message: "down"}
	g := &scriptedGenerator{errs: []error{retry, retry, retry, retry}}
	r := NewRetrying(g, nil)
	r.backoff = noBackoff

	_, err := r.Generate(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsRetryable(err) {
		t.Fatalf("expected wrapped retryable error, got %v", err)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Fatalf("unexpected message: %v", err)
	}
	if g.calls != MaxRetries {
		t.Fatalf("expected %d calls, got %d", MaxRetries, g.calls)
	}
}

func TestRetryingStopsOnPermanentError(t *testing.T) {
	g := &scriptedGenerator{errs: []error{errors.New("bad request")}}
	r := NewRetrying(g, nil)
	r.backoff = noBackoff

	if _, err := r.Generate(context.Background(), "hi"); err == nil || IsRetryable(err) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if g.calls != 1 {
		t.Fatalf("expected 1 call, got %d", g.calls)
	}
}

func TestRetryingHonorsContext(t *testing.T) {
	g := &scriptedGenerator{errs: []error{&RetryableError{StatusCode: 503}}}
	r := NewRetrying(g, nil)
	r.backoff = func(int) time.Duration { return time.Hour }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Generate(ctx, "hi"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryingExposesModel(t *testing.T) {
	r := NewRetrying(&scriptedGenerator{}, nil)
	if r.Model() != "scripted" {
		t.Fatalf("expected model scripted, got %q", r.Model())
	}
}

func TestBackoffBounds(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt)
		base := time.Duration(1<<uint(attempt)) * time.Second
		if base > 30*time.Second {
			base = 30 * time.Second
		}
		if d < base || d >= base+base/2 {
			t.Fatalf("attempt %d: backoff %v outside [%v, %v)", attempt, d, base, base+base/2)
		}
	}
}
