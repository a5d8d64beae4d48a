// Package llm calls the Gemini API, optionally through a Cloudflare AI
// Gateway, using the Google Gen AI SDK.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/deppfellow/userapi/internal/config"
)

// Client generates content with the configured model and prompt.
type Client struct {
	client *genai.Client
	model  string
	prompt string
}

// NewClient builds a Gemini client from cfg. It does not contact the API.
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("llm api key is not configured")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if endpoint := cfg.Endpoint(); endpoint != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: endpoint}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
		prompt: cfg.Prompt,
	}, nil
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends the configured prompt and returns the provider
// response unchanged.
func (c *Client) GenerateContent(ctx context.Context) (*genai.GenerateContentResponse, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(c.prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content with model %s: %w", c.model, err)
	}
	return resp, nil
}
