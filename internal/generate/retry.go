package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// MaxRetries is the number of generation attempts, the first one included.
const MaxRetries = 3

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// Retrying wraps a Generator and retries RetryableError failures, making at
// most MaxRetries attempts.
type Retrying struct {
	Generator
	log     *slog.Logger
	backoff func(attempt int) time.Duration
}

func NewRetrying(g Generator, log *slog.Logger) *Retrying {
	return &Retrying{Generator: g, log: log, backoff: Backoff}
}

func (r *Retrying) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := range MaxRetries {
		text, err := r.Generator.Generate(ctx, prompt)
		if err == nil || !IsRetryable(err) {
			return text, err
		}
		lastErr = err
		if attempt == MaxRetries-1 {
			break
		}
		if r.log != nil {
			r.log.Warn("retryable generation error", "attempt", attempt, "error", err)
		}
		select {
		case <-time.After(r.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", MaxRetries, lastErr)
}
