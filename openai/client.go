// Package openai implements the OpenAI chat-completions provider.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/randalmurphal/ola/provider"
	"github.com/randalmurphal/ola/wire"
)

const (
	defaultBaseURL  = "https://api.openai.com"
	completionsPath = "/v1/chat/completions"
)

// Client talks to the OpenAI chat completions endpoint.
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

// Provider returns "openai".
func (c *Client) Provider() string { return "openai" }

// Capabilities reports SSE streaming support.
func (c *Client) Capabilities() provider.Capabilities {
	return provider.Capabilities{Streaming: true}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type payload struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type completion struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Send submits the prompt as a single user message.
func (c *Client) Send(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if c.apiKey == "" {
		return nil, provider.NewError("openai", "send", provider.ErrNotConfigured)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	body, err := json.Marshal(payload{
		Model:    model,
		Messages: []message{{Role: "user", Content: req.Prompt}},
		Stream:   req.Stream,
	})
	if err != nil {
		return nil, provider.NewError("openai", "send", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, provider.NewError("openai", "send", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, provider.NewError("openai", "send", provider.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.NewHTTPError("openai", "send", resp.StatusCode, wire.ErrorBody(resp.Body))
	}

	var content string
	if req.Stream {
		content, err = wire.DecodeSSE(resp.Body, extractDelta, c.echo)
		if err != nil {
			return nil, provider.NewError("openai", "send", err)
		}
	} else {
		var out completion
		if err := wire.DecodeJSON(resp.Body, &out); err != nil {
			return nil, provider.NewError("openai", "send", err)
		}
		if len(out.Choices) == 0 {
			return nil, provider.NewError("openai", "send", fmt.Errorf("%w: no choices", provider.ErrEmptyResponse))
		}
		content = out.Choices[0].Message.Content
	}

	return &provider.Response{
		Content:  content,
		Model:    model,
		Duration: time.Since(start),
	}, nil
}

func extractDelta(line []byte) (string, error) {
	var chunk struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(line, &chunk); err != nil {
		return "", err
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}
