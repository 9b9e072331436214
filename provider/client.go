// Package provider defines the unified interface for LLM HTTP providers.
//
// This package enables switching between reasoning-model backends
// (OpenAI, Anthropic, Ollama, Gemini) while maintaining a consistent API.
// Each backend lives in its own package and registers a factory here; the
// wire-protocol details (endpoint paths, auth headers, streaming formats)
// stay colocated with the backend that owns them.
//
// # Usage
//
// Create a client using the registry:
//
//	client, err := provider.New("openai", provider.Config{
//	    APIKey: key,
//	    Model:  "gpt-4o",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Send(ctx, provider.Request{
//	    Prompt: "...",
//	    Model:  "gpt-4o",
//	    Stream: true,
//	})
//
// # Available Providers
//
//   - "openai": OpenAI chat completions (SSE streaming)
//   - "anthropic": Anthropic messages (SSE streaming)
//   - "ollama": Ollama generate endpoint (NDJSON streaming)
//   - "gemini": Google Gemini generateContent (non-streaming)
//
// Provider names are matched case-insensitively, so configuration files
// may carry display names ("OpenAI", "Anthropic", ...).
package provider

import "context"

// Client is the unified interface for LLM HTTP providers.
type Client interface {
	// Send submits a prompt and returns the accumulated response text.
	// When req.Stream is true the client echoes each fragment to the
	// configured echo sink as it arrives, in strict arrival order,
	// before appending it to the accumulator. The context controls
	// cancellation; the transport enforces the request timeout.
	Send(ctx context.Context, req Request) (*Response, error)

	// Provider returns the provider name (e.g., "openai", "ollama").
	Provider() string

	// Capabilities returns what this provider supports.
	Capabilities() Capabilities
}

// Capabilities describes what a provider supports at the wire level.
type Capabilities struct {
	// Streaming indicates if the provider can stream response tokens.
	// When false, a streaming request still succeeds: the finished
	// response is echoed to the echo sink in a single pass.
	Streaming bool `json:"streaming"`
}
