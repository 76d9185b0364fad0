package llm

import "context"

// Request is one generation call.
type Request struct {
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Generator sends a prompt to a text generation backend and returns the raw completion.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
