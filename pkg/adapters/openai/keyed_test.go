package openai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/adapters/openai"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedCompleter_PicksUpStoredKey(t *testing.T) {
	var lastAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	settings := memory.NewSettingsStore()
	c := openai.NewKeyed(settings, openai.Config{BaseURL: srv.URL, MaxRetries: noRetries()})
	msgs := []ports.Message{{Role: ports.RoleUser, Content: "hi"}}

	_, err := c.Complete(ctx, msgs)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)

	require.NoError(t, settings.Set(ctx, ports.SettingAPIKey, "sk-one"))
	out, err := c.Complete(ctx, msgs)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "Bearer sk-one", lastAuth.Load())

	require.NoError(t, settings.Set(ctx, ports.SettingAPIKey, "sk-two"))
	_, err = c.Complete(ctx, msgs)
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-two", lastAuth.Load())
}

func TestKeyedCompleter_ConfigKeyWins(t *testing.T) {
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	settings := memory.NewSettingsStore()
	require.NoError(t, settings.Set(ctx, ports.SettingAPIKey, "sk-stored"))

	c := openai.NewKeyed(settings, openai.Config{APIKey: "sk-env", BaseURL: srv.URL, MaxRetries: noRetries()})
	_, err := c.Complete(ctx, []ports.Message{{Role: ports.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-env", auth.Load())
}
