// Package ollama implements the Ollama local-model provider.
//
// Ollama speaks NDJSON rather than SSE: the generate endpoint emits one
// bare JSON object per line whether or not streaming was requested, so
// the same line loop serves both modes. No API key is involved.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/randalmurphal/ola/provider"
	"github.com/randalmurphal/ola/wire"
)

const (
	// DefaultBaseURL is the local Ollama daemon.
	DefaultBaseURL = "http://localhost:11434"

	generatePath = "/api/generate"
	tagsPath     = "/api/tags"
	versionPath  = "/api/version"

	// numPredict caps the response length per call.
	numPredict = 2048
)

// Client talks to a local or remote Ollama daemon.
type Client struct {
	baseURL string
	model   string
	httpc   *http.Client
	echo    io.Writer
}

// New builds a client from the config.
func New(cfg provider.Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		model:   cfg.Model,
		httpc:   cfg.Client(),
		echo:    cfg.Echo,
	}
}

// Provider returns "ollama".
func (c *Client) Provider() string { return "ollama" }

// Capabilities reports NDJSON streaming support.
func (c *Client) Capabilities() provider.Capabilities {
	return provider.Capabilities{Streaming: true}
}

type options struct {
	NumPredict int `json:"num_predict"`
}

type payload struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options options `json:"options"`
}

// Send submits the prompt to the generate endpoint.
func (c *Client) Send(ctx context.Context, req provider.Request) (*provider.Response, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	body, err := json.Marshal(payload{
		Model:   model,
		Prompt:  req.Prompt,
		Stream:  req.Stream,
		Options: options{NumPredict: numPredict},
	})
	if err != nil {
		return nil, provider.NewError("ollama", "send", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, provider.NewError("ollama", "send", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, provider.NewError("ollama", "send", provider.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.NewHTTPError("ollama", "send", resp.StatusCode, wire.ErrorBody(resp.Body))
	}

	// Non-streaming responses arrive as a single NDJSON line, so the
	// line decoder handles both modes. Echo only when streaming.
	echo := c.echo
	if !req.Stream {
		echo = nil
	}
	content, err := wire.DecodeNDJSON(resp.Body, extractResponse, echo)
	if err != nil {
		return nil, provider.NewError("ollama", "send", err)
	}

	return &provider.Response{
		Content:  content,
		Model:    model,
		Duration: time.Since(start),
	}, nil
}

func extractResponse(line []byte) (string, error) {
	var chunk struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(line, &chunk); err != nil {
		return "", err
	}
	return chunk.Response, nil
}

// ListModels returns the names of models installed on the daemon,
// via GET /api/tags.
func ListModels(ctx context.Context, baseURL string, httpc *http.Client) ([]string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+tagsPath, nil)
	if err != nil {
		return nil, provider.NewError("ollama", "list-models", err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, provider.NewError("ollama", "list-models", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.NewHTTPError("ollama", "list-models", resp.StatusCode, wire.ErrorBody(resp.Body))
	}

	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := wire.DecodeJSON(resp.Body, &out); err != nil {
		return nil, provider.NewError("ollama", "list-models", err)
	}

	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Ping probes the daemon via GET /api/version. Used by configure to
// confirm connectivity before saving credentials.
func Ping(ctx context.Context, baseURL string, httpc *http.Client) error {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 5 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+versionPath, nil)
	if err != nil {
		return provider.NewError("ollama", "ping", err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return provider.NewError("ollama", "ping", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.NewHTTPError("ollama", "ping", resp.StatusCode, wire.ErrorBody(resp.Body))
	}
	return nil
}
