package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaClient generates text with a local Ollama server.
type OllamaClient struct {
	client *api.Client
	model  string

	Stats *LatencyStats
}

// NewOllamaClient connects to the Ollama server at host.
func NewOllamaClient(host, model string, stats *LatencyStats) (*OllamaClient, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}
	return &OllamaClient{
		client: api.NewClient(u, &http.Client{Timeout: 300 * time.Second}),
		model:  model,
		Stats:  stats,
	}, nil
}

// Generate streams a completion for prompt and returns the full text.
func (o *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := o.generate(ctx, prompt)
	o.Stats.Record(time.Since(start).Milliseconds(), err)
	return text, err
}

func (o *OllamaClient) generate(ctx context.Context, prompt string) (string, error) {
	req := api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"num_predict": 2048,
		},
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := sb.WriteString(resp.Response)
		return err
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500) {
			msg := statusErr.ErrorMessage
			if msg == "" {
				msg = statusErr.Status
			}
			return "", &RetryableError{StatusCode: statusErr.StatusCode, Message: msg}
		}
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from ollama")
	}
	return sb.String(), nil
}

// Model returns the configured model name.
func (o *OllamaClient) Model() string { return o.model }
