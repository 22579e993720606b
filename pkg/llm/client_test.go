package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"guardian-portal-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, capture *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
}

func TestComplete_DefaultsMaxTokensWhenUnconfigured(t *testing.T) {
	var req map[string]interface{}
	srv := completionServer(t, &req)
	defer srv.Close()

	client := NewClient(config.LLMConfig{BaseURL: srv.URL, Model: "gpt-4o-mini"})

	reply, err := client.Complete(context.Background(), "system", "user", 0)
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	// No configured or per-call limit still sends a bounded completion.
	assert.Equal(t, float64(defaultMaxTokens), req["max_tokens"])
}

func TestComplete_PerCallMaxTokensWins(t *testing.T) {
	var req map[string]interface{}
	srv := completionServer(t, &req)
	defer srv.Close()

	client := NewClient(config.LLMConfig{BaseURL: srv.URL, Model: "gpt-4o-mini", MaxTokens: 300})

	_, err := client.Complete(context.Background(), "system", "user", 120)
	require.NoError(t, err)

	assert.Equal(t, float64(120), req["max_tokens"])
}

func TestComplete_ConfiguredMaxTokensUsedForNonPositive(t *testing.T) {
	var req map[string]interface{}
	srv := completionServer(t, &req)
	defer srv.Close()

	client := NewClient(config.LLMConfig{BaseURL: srv.URL, Model: "gpt-4o-mini", MaxTokens: 250})

	_, err := client.Complete(context.Background(), "system", "user", -1)
	require.NoError(t, err)

	assert.Equal(t, float64(250), req["max_tokens"])
}
