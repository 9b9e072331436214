package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/ola/provider"
)

func TestSend_NonStreaming(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"part one "},{"type":"text","text":"part two"}]}`))
	}))
	defer srv.Close()

	c := New(provider.Config{APIKey: "sk-ant-test", BaseURL: srv.URL})
	resp, err := c.Send(context.Background(), provider.Request{Prompt: "hi", Model: "claude-3-opus-20240229"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "sk-ant-test", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "claude-3-opus-20240229", gotBody["model"])
	assert.Equal(t, float64(2048), gotBody["max_tokens"])
	assert.Equal(t, false, gotBody["stream"])

	// All text blocks concatenate in order.
	assert.Equal(t, "part one part two", resp.Content)
}

func TestSend_Streaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(
			"data: {\"type\":\"message_start\",\"message\":{}}\n\n" +
				"data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"H\"}}\n\n" +
				"data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"i\"}}\n\n" +
				"data: {\"type\":\"message_stop\"}\n\n"))
	}))
	defer srv.Close()

	var echo bytes.Buffer
	c := New(provider.Config{APIKey: "sk-ant-test", BaseURL: srv.URL, Echo: &echo})
	resp, err := c.Send(context.Background(), provider.Request{Prompt: "hi", Model: "claude-3-opus-20240229", Stream: true})
	require.NoError(t, err)

	assert.Equal(t, "Hi", resp.Content)
	assert.Equal(t, "Hi", echo.String())
}

func TestSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	c := New(provider.Config{APIKey: "sk-ant-test", BaseURL: srv.URL})
	_, err := c.Send(context.Background(), provider.Request{Prompt: "hi", Model: "claude-3-opus-20240229"})
	require.Error(t, err)

	status, ok := provider.HTTPStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestRegistered(t *testing.T) {
	require.True(t, provider.IsRegistered("anthropic"))
	client, err := provider.New("Anthropic", provider.Config{APIKey: "sk-ant-test"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", client.Provider())
}
