package provider

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the transport-level cap on a single completion call.
// It is the only cancellation point during a blocking request.
const DefaultTimeout = 120 * time.Second

// Config holds configuration for creating an LLM provider client.
type Config struct {
	// Provider is the registry name of the provider to use.
	// Filled in by New when constructed through the registry.
	Provider string `json:"provider" yaml:"provider"`

	// APIKey authenticates requests. Ollama ignores it.
	APIKey string `json:"api_key" yaml:"api_key"`

	// BaseURL overrides the provider's default endpoint base.
	// Useful for proxies, self-hosted gateways, and tests.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Model is the default model when a request leaves Model empty.
	Model string `json:"model" yaml:"model"`

	// Timeout is the maximum duration for a completion request.
	// 0 uses DefaultTimeout.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Echo receives streamed fragments as they arrive. nil discards
	// the live stream; the accumulated response is still returned.
	Echo io.Writer `json:"-" yaml:"-"`

	// HTTPClient overrides the transport. nil builds one from Timeout.
	HTTPClient *http.Client `json:"-" yaml:"-"`
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}

// Client returns the HTTP client to use for requests, building one
// with the configured timeout when none was supplied.
func (c *Config) Client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// WithEcho returns a copy of the config with the echo sink set.
func (c Config) WithEcho(w io.Writer) Config {
	c.Echo = w
	return c
}

// WithModel returns a copy of the config with the model set.
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}
