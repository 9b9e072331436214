// Package gemini implements the Google Gemini provider.
//
// This wire adapter only speaks the non-streaming generateContent
// endpoint. A streaming request still succeeds: the parts of the single
// response are echoed part-by-part to the echo sink once the call
// completes.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/randalmurphal/ola/provider"
	"github.com/randalmurphal/ola/wire"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	temperature     = 0.7
	maxOutputTokens = 2048
)

// Client talks to the Gemini generateContent endpoint.
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

// Provider returns "gemini".
func (c *Client) Provider() string { return "gemini" }

// Capabilities reports that token streaming is unsupported.
func (c *Client) Capabilities() provider.Capabilities {
	return provider.Capabilities{Streaming: false}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type payload struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type completion struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Send submits the prompt in a single generateContent call. The API
// key travels in the query string, not a header.
func (c *Client) Send(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if c.apiKey == "" {
		return nil, provider.NewError("gemini", "send", provider.ErrNotConfigured)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	body, err := json.Marshal(payload{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		return nil, provider.NewError("gemini", "send", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, model, url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, provider.NewError("gemini", "send", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, provider.NewError("gemini", "send", provider.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.NewHTTPError("gemini", "send", resp.StatusCode, wire.ErrorBody(resp.Body))
	}

	var out completion
	if err := wire.DecodeJSON(resp.Body, &out); err != nil {
		return nil, provider.NewError("gemini", "send", err)
	}
	if len(out.Candidates) == 0 {
		return nil, provider.NewError("gemini", "send", fmt.Errorf("%w: no candidates", provider.ErrEmptyResponse))
	}

	var acc strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		if req.Stream && c.echo != nil {
			if _, err := io.WriteString(c.echo, p.Text); err != nil {
				return nil, provider.NewError("gemini", "send", err)
			}
		}
		acc.WriteString(p.Text)
	}

	return &provider.Response{
		Content:  acc.String(),
		Model:    model,
		Duration: time.Since(start),
	}, nil
}
