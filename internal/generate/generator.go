package generate

import "context"

// Generator produces text for a prompt. Implementations wrap a remote
// model API.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}
