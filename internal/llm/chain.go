package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Failure records why one provider attempt in the chain failed.
type Failure struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// ExhaustedError is returned when every provider in the chain failed. It
// aggregates each provider's failure reason; the chain never fabricates a
// result, callers decide the fallback behavior.
type ExhaustedError struct {
	Failures []Failure
}

func (e *ExhaustedError) Error() string {
	if len(e.Failures) == 0 {
		return "no reasoning providers configured"
	}
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %s", f.Provider, f.Reason)
	}
	return "all reasoning providers failed: " + strings.Join(parts, "; ")
}

// Chain walks a prioritized list of providers for every request: primary
// first, then fallbacks, carrying the prompt and schema unchanged. The
// first schema-valid response wins.
type Chain struct {
	providers []Provider

	mu       sync.Mutex
	failures map[string]int

	logger *zap.Logger
}

// NewChain creates a provider chain. An empty chain is allowed: every
// Execute call then fails with ExhaustedError and callers serve their
// documented degraded responses.
func NewChain(providers []Provider, logger *zap.Logger) *Chain {
	if len(providers) == 0 {
		logger.Warn("Reasoning chain has no providers; all calls will degrade")
	}
	return &Chain{
		providers: providers,
		failures:  make(map[string]int),
		logger:    logger,
	}
}

// Execute runs the request through the chain and returns schema-valid raw
// JSON from the first provider that succeeds.
func (c *Chain) Execute(ctx context.Context, req Request) ([]byte, error) {
	var failures []Failure

	for _, provider := range c.providers {
		c.logger.Debug("Attempting reasoning call",
			zap.String("provider", provider.Name()))

		out, err := provider.Execute(ctx, req)
		if err != nil {
			failures = append(failures, c.recordFailure(provider, err))
			continue
		}

		raw := []byte(StripFences(out))
		if len(raw) == 0 {
			failures = append(failures, c.recordFailure(provider,
				fmt.Errorf("empty response")))
			continue
		}

		if req.Schema != nil {
			if err := req.Schema.Validate(raw); err != nil {
				failures = append(failures, c.recordFailure(provider,
					fmt.Errorf("schema violation: %w", err)))
				continue
			}
		}

		c.resetFailures(provider.Name())
		return raw, nil
	}

	return nil, &ExhaustedError{Failures: failures}
}

func (c *Chain) recordFailure(provider Provider, err error) Failure {
	c.mu.Lock()
	c.failures[provider.Name()]++
	count := c.failures[provider.Name()]
	c.mu.Unlock()

	c.logger.Error("Provider failed, advancing chain",
		zap.String("provider", provider.Name()),
		zap.Int("consecutive_failures", count),
		zap.Error(err))

	return Failure{Provider: provider.Name(), Reason: err.Error()}
}

func (c *Chain) resetFailures(name string) {
	c.mu.Lock()
	c.failures[name] = 0
	c.mu.Unlock()
}

// ProvidersInfo returns a snapshot describing each provider in chain order.
func (c *Chain) ProvidersInfo() []map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := make([]map[string]interface{}, len(c.providers))
	for i, provider := range c.providers {
		entry := provider.ModelInfo()
		entry["priority"] = i
		entry["consecutive_failures"] = c.failures[provider.Name()]
		info[i] = entry
	}
	return info
}

// Close closes every provider in the chain.
func (c *Chain) Close() error {
	var lastErr error
	for _, provider := range c.providers {
		if err := provider.Close(); err != nil {
			c.logger.Error("Failed to close provider",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}
