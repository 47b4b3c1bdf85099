// Package ollama implements the Generator port against a local Ollama
// server's /api/generate endpoint.
package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"pagepilot/internal/domain/model"
	"pagepilot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Generator = (*Client)(nil)

// Client implements the Generator port using Ollama's non-streaming
// generate endpoint.
type Client struct {
	http  *resty.Client
	model string
}

// NewClient creates an Ollama client for the given host (e.g.
// "http://127.0.0.1:11434") and model name. The timeout bounds a single
// generation call; local models can be slow, so it is configured
// independently of other network timeouts.
func NewClient(host, modelName string, timeout time.Duration) *Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(host, "/"))
	c.SetTimeout(timeout)

	return &Client{http: c, model: modelName}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs a single non-streaming completion and returns the raw
// model text, trimmed of surrounding whitespace.
func (c *Client) Generate(ctx context.Context, req model.GenerationRequest) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
		Options: generateOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			NumPredict:  req.MaxTokens,
		},
	}

	res, err := c.http.R().
		WithContext(ctx).
		SetBody(payload).
		SetResult(&generateResponse{}).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama generate with model %s: %w", c.model, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("ollama generate with model %s: status %d: %s", c.model, res.StatusCode(), res.String())
	}

	body := res.Result().(*generateResponse)
	return strings.TrimSpace(body.Response), nil
}
