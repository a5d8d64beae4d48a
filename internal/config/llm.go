package config

import (
	"fmt"
	"net/url"
)

const (
	// DefaultLLMModel is the Gemini model queried by the /LLM passthrough.
	DefaultLLMModel = "gemini-2.0-pro-exp-02-05"

	// DefaultLLMPrompt is the fixed prompt sent by the passthrough.
	DefaultLLMPrompt = "What is Cloudflare?"

	cloudflareGatewayURL = "https://gateway.ai.cloudflare.com/v1/%s/%s/google-ai-studio"
)

// LLMConfig configures the generative-AI passthrough.
//
// The API key only ever comes from the environment. When AccountID and
// Gateway are both set, calls are routed through the Cloudflare AI Gateway;
// BaseURL overrides the endpoint entirely (useful for tests and proxies).
type LLMConfig struct {
	APIKey    string `koanf:"api_key"`
	AccountID string `koanf:"account_id"`
	Gateway   string `koanf:"gateway"`
	BaseURL   string `koanf:"base_url"`
	Model     string `koanf:"model"`
	Prompt    string `koanf:"prompt"`
}

// Enabled reports whether an API key was configured.
func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// Endpoint returns the base URL the Gemini client should use.
// An empty string means the provider's default endpoint.
func (c LLMConfig) Endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.AccountID != "" && c.Gateway != "" {
		return fmt.Sprintf(cloudflareGatewayURL, url.PathEscape(c.AccountID), url.PathEscape(c.Gateway))
	}
	return ""
}

func (c *LLMConfig) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultLLMModel
	}
	if c.Prompt == "" {
		c.Prompt = DefaultLLMPrompt
	}
}
