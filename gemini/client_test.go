package gemini

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

func TestSend(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"there"}]}}]}`))
	}))
	defer srv.Close()

	c := New(provider.Config{APIKey: "g-key", BaseURL: srv.URL})
	resp, err := c.Send(context.Background(), provider.Request{Prompt: "hi", Model: "gemini-1.5-pro"})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-1.5-pro:generateContent", gotPath)
	assert.Equal(t, "g-key", gotKey)

	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "hi", parts[0].(map[string]any)["text"])

	genCfg := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, 0.7, genCfg["temperature"])
	assert.Equal(t, float64(2048), genCfg["maxOutputTokens"])

	assert.Equal(t, "hello there", resp.Content)
}

func TestSend_StreamEchoesParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"one "},{"text":"two"}]}}]}`))
	}))
	defer srv.Close()

	var echo bytes.Buffer
	c := New(provider.Config{APIKey: "g-key", BaseURL: srv.URL, Echo: &echo})
	resp, err := c.Send(context.Background(), provider.Request{Prompt: "hi", Model: "gemini-1.5-pro", Stream: true})
	require.NoError(t, err)

	assert.Equal(t, "one two", resp.Content)
	assert.Equal(t, "one two", echo.String())
	assert.False(t, c.Capabilities().Streaming)
}

func TestSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	c := New(provider.Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := c.Send(context.Background(), provider.Request{Prompt: "hi", Model: "gemini-1.5-pro"})
	require.Error(t, err)

	status, ok := provider.HTTPStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestSend_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := New(provider.Config{APIKey: "g-key", BaseURL: srv.URL})
	_, err := c.Send(context.Background(), provider.Request{Prompt: "hi", Model: "gemini-1.5-pro"})
	require.ErrorIs(t, err, provider.ErrEmptyResponse)
}

func TestRegistered(t *testing.T) {
	require.True(t, provider.IsRegistered("gemini"))
	client, err := provider.New("Gemini", provider.Config{APIKey: "g-key"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", client.Provider())
}
