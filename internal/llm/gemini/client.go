package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"pdfhelper-backend/internal/llm"
	"pdfhelper-backend/internal/shared/metrics"
)

// Client calls the Gemini generateContent API.
type Client struct {
	client *genai.Client
	model  string
}

// New constructs a Gemini completion client.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Complete sends the prompt and returns the first candidate's text parts
// joined into a single string. One call, no retry.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	metrics.ObserveDependency("completion", time.Since(start))
	if err != nil {
		metrics.CompletionCall("error")
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		metrics.CompletionCall("error")
		return "", llm.ErrNoCandidates
	}

	var parts []string
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	metrics.CompletionCall("ok")
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

var _ llm.Client = (*Client)(nil)
