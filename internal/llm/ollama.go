package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/logger"
)

const maxLoggedBody = 1000

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response *string `json:"response"`
}

type implOllama struct {
	url    string
	client *http.Client
	logger logger.Logger
}

// NewOllama creates a Generator for an Ollama style /api/generate endpoint.
// Timeouts come from the request context.
func NewOllama(url string, client *http.Client, log logger.Logger) Generator {
	if client == nil {
		client = &http.Client{}
	}
	return &implOllama{
		url:    url,
		client: client,
		logger: log,
	}
}

func (o *implOllama) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(ollamaRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	o.logger.Debug(ctx, "POST %s model=%s prompt=%d chars", o.url, req.Model, len([]rune(req.Prompt)))

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", o.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	o.logger.Debug(ctx, "Response %d: %s", resp.StatusCode, clip(string(body), maxLoggedBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPStatusError{URL: o.url, StatusCode: resp.StatusCode, Body: clip(strings.TrimSpace(string(body)), 200)}
	}

	var out ollamaResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Response == nil {
		return "", fmt.Errorf("%w: no response field", ErrMalformedResponse)
	}

	return strings.TrimSpace(*out.Response), nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
