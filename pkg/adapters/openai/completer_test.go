package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/stepwise/pkg/adapters/openai"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noRetries() *int {
	n := 0
	return &n
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := openai.New(openai.Config{})
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestComplete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "Bubble sort compares neighbours."}}]
		}`))
	}))
	defer srv.Close()

	c, err := openai.New(openai.Config{APIKey: "sk-test", BaseURL: srv.URL, MaxRetries: noRetries()})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), []ports.Message{
		{Role: ports.RoleSystem, Content: "You are a tutor."},
		{Role: ports.RoleUser, Content: "Explain."},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bubble sort compares neighbours.", out)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.EqualValues(t, 400, body["max_completion_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	c, err := openai.New(openai.Config{APIKey: "sk-bad", BaseURL: srv.URL, MaxRetries: noRetries()})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []ports.Message{{Role: ports.RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	c, err := openai.New(openai.Config{APIKey: "sk", BaseURL: srv.URL, MaxRetries: noRetries()})
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestComplete_RateLimitHonoursContext(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
	}))
	defer srv.Close()

	c, err := openai.New(openai.Config{APIKey: "sk", BaseURL: srv.URL, RequestsPerMinute: 1, MaxRetries: noRetries()})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Complete(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Equal(t, 1, calls)
}
