// Package anthropic implements the Anthropic messages provider.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/randalmurphal/ola/provider"
	"github.com/randalmurphal/ola/wire"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	messagesPath   = "/v1/messages"

	// apiVersion is pinned; Anthropic gates wire-format changes on it.
	apiVersion = "2023-06-01"

	// maxTokens caps the response length per call.
	maxTokens = 2048
)

// Client talks to the Anthropic messages endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	httpc   *http.Client
	echo    io.Writer
}

// New builds a client from the config.
func New(cfg provider.Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   cfg.Model,
		httpc:   cfg.Client(),
		echo:    cfg.Echo,
	}
}

// Provider returns "anthropic".
func (c *Client) Provider() string { return "anthropic" }

// Capabilities reports SSE streaming support.
func (c *Client) Capabilities() provider.Capabilities {
	return provider.Capabilities{Streaming: true}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type payload struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
	Stream    bool      `json:"stream"`
}

type completion struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Send submits the prompt as a single user message.
func (c *Client) Send(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if c.apiKey == "" {
		return nil, provider.NewError("anthropic", "send", provider.ErrNotConfigured)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	body, err := json.Marshal(payload{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: req.Prompt}},
		Stream:    req.Stream,
	})
	if err != nil {
		return nil, provider.NewError("anthropic", "send", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, provider.NewError("anthropic", "send", err)
	}
	httpReq.Header.Set("X-API-Key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, provider.NewError("anthropic", "send", provider.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.NewHTTPError("anthropic", "send", resp.StatusCode, wire.ErrorBody(resp.Body))
	}

	var content string
	if req.Stream {
		content, err = wire.DecodeSSE(resp.Body, extractDelta, c.echo)
		if err != nil {
			return nil, provider.NewError("anthropic", "send", err)
		}
	} else {
		var out completion
		if err := wire.DecodeJSON(resp.Body, &out); err != nil {
			return nil, provider.NewError("anthropic", "send", err)
		}
		if len(out.Content) == 0 {
			return nil, provider.NewError("anthropic", "send", fmt.Errorf("%w: no content blocks", provider.ErrEmptyResponse))
		}
		var parts strings.Builder
		for _, block := range out.Content {
			parts.WriteString(block.Text)
		}
		content = parts.String()
	}

	return &provider.Response{
		Content:  content,
		Model:    model,
		Duration: time.Since(start),
	}, nil
}

// extractDelta pulls text out of content_block_delta events. Other
// event kinds (message_start, ping, message_stop) carry no delta.text
// and yield an empty fragment.
func extractDelta(line []byte) (string, error) {
	var event struct {
		Delta struct {
			Text string `json:"text"`
		} `json:"delta"`
	}
	if err := json.Unmarshal(line, &event); err != nil {
		return "", err
	}
	return event.Delta.Text, nil
}
