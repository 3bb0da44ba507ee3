package llm

import (
	"context"
	"strings"
	"time"
)

// ProviderType represents the type of reasoning provider
type ProviderType string

const (
	ProviderGemini     ProviderType = "gemini"
	ProviderGroq       ProviderType = "groq"
	ProviderOpenRouter ProviderType = "openrouter"
)

// ProviderConfig holds configuration for a single provider instance
type ProviderConfig struct {
	Type      ProviderType  `yaml:"type"`
	APIKey    string        `yaml:"api_key"`
	ModelName string        `yaml:"model_name"`

	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	// Rate limiting per provider
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// Request is a structured-output reasoning call. The same request is carried
// unchanged across every provider in the fallback chain.
type Request struct {
	System string
	Prompt string
	Schema *Schema
}

// Provider is any model backend able to execute a reasoning request and
// return the raw model text. Transport concerns only; schema validation
// happens in the chain.
type Provider interface {
	Name() string
	Execute(ctx context.Context, req Request) (string, error)
	Close() error
	ModelInfo() map[string]interface{}
}

// StripFences removes markdown code fences models sometimes wrap around
// their JSON output.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}

	return strings.TrimSpace(text)
}
