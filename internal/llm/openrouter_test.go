package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coverletter/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterClient_ChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))

		var req openRouterRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "openai/gpt-4o-mini", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Dear Hiring Team,"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenRouterClient(config.OpenRouterConfig{
		APIKey:  "or-key",
		BaseURL: srv.URL + "/api/v1",
		Model:   "openai/gpt-4o-mini",
	}, srv.Client(), nil)

	answer, err := client.ChatCompletion(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Team,", answer)
}

func TestOpenRouterClient_StatusError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := NewOpenRouterClient(config.OpenRouterConfig{
		APIKey:  "or-key",
		BaseURL: srv.URL,
		Model:   "m",
	}, srv.Client(), nil)

	_, err := client.ChatCompletion(context.Background(), "prompt", "")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestOpenRouterClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenRouterClient(config.OpenRouterConfig{BaseURL: srv.URL, Model: "m"}, srv.Client(), nil)

	_, err := client.ChatCompletion(context.Background(), "prompt", "")
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := config.Config{Provider: config.ProviderOpenRouter}
	client, err := New(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenRouterClient{}, client)

	cfg.Provider = config.ProviderOpenAI
	client, err = New(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)

	cfg.Provider = "unknown"
	_, err = New(cfg, nil, nil)
	require.Error(t, err)
}
