package provider

import "time"

// Request configures an LLM completion call.
// This is the provider-agnostic request format used across all backends.
type Request struct {
	// Prompt is the fully assembled prompt text to send.
	Prompt string `json:"prompt"`

	// Model specifies which model to use (provider-specific name).
	// Examples: "gpt-4o", "claude-3-opus-20240229", "llama3.2"
	Model string `json:"model"`

	// Stream requests token streaming. Fragments are echoed to the
	// client's echo sink as they arrive.
	Stream bool `json:"stream"`
}

// Response is the output of a completion call.
type Response struct {
	// Content is the full accumulated response text, including any
	// reasoning markup the model emitted.
	Content string `json:"content"`

	// Model is the model the request was made with.
	Model string `json:"model"`

	// Duration is the time taken for the completion.
	Duration time.Duration `json:"duration"`
}
