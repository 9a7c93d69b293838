package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/locainsight/internal/adapters/openai"
	"github.com/samirrijal/locainsight/internal/core/domain"
)

func newServer(t *testing.T, status int, body string, inspect func(*http.Request, map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if inspect != nil {
			var payload map[string]any
			_ = json.NewDecoder(r.Body).Decode(&payload)
			inspect(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Complete(t *testing.T) {
	body := `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "gpt-3.5-turbo-0125",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "[{\"name\":\"Guggenheim\"}]"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 120, "completion_tokens": 80, "total_tokens": 200}
	}`

	var gotAuth string
	var gotPayload map[string]any
	srv := newServer(t, http.StatusOK, body, func(r *http.Request, p map[string]any) {
		gotAuth = r.Header.Get("Authorization")
		gotPayload = p
	})

	client := openai.New("sk-test", srv.URL)
	completion, err := client.Complete(context.Background(), domain.CompletionRequest{
		System:           "system",
		User:             "user",
		Model:            "gpt-3.5-turbo",
		MaxTokens:        500,
		Temperature:      0.7,
		PresencePenalty:  0.3,
		FrequencyPenalty: 0.3,
	})
	require.NoError(t, err)

	assert.Equal(t, `[{"name":"Guggenheim"}]`, completion.Content)
	assert.Equal(t, "gpt-3.5-turbo-0125", completion.Model)
	assert.Equal(t, 120, completion.PromptTokens)
	assert.Equal(t, 80, completion.CompletionTokens)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotPayload["model"])
	assert.EqualValues(t, 500, gotPayload["max_tokens"])
	messages, ok := gotPayload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestClient_Complete_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, sentinel: domain.ErrRateLimited},
		{name: "bad credentials", status: http.StatusUnauthorized, sentinel: domain.ErrProviderAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, `{"error":{"message":"nope","type":"requests","code":"x"}}`, nil)

			_, err := openai.New("sk-test", srv.URL).Complete(context.Background(), domain.CompletionRequest{Model: "m"})
			require.Error(t, err)

			var pErr *domain.ProviderError
			require.True(t, errors.As(err, &pErr))
			assert.Equal(t, tt.status, pErr.StatusCode)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestClient_Complete_NoChoices(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"id":"x","model":"m","choices":[]}`, nil)

	_, err := openai.New("sk-test", srv.URL).Complete(context.Background(), domain.CompletionRequest{Model: "m"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrRateLimited))
}
