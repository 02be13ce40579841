package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func chatReply(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var body map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatReply(sampleQuestion, "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write trivia questions.",
		Prompt:    "One question.",
		Schema:    questionSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, sampleQuestion, string(resp.Content))
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	msgs, _ := body["messages"].([]any)
	assert.Len(t, msgs, 2, "system + user")
	assert.Contains(t, body, "response_format")
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatReply(`{"question":""}`, "stop"))
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "q", Schema: questionSchema()})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatReply(`{"question":"Which`, "length"))
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "q", MaxTokens: 5})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limit", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "error", "message": http.StatusText(tt.status)},
				})
			})
			_, err := p.Generate(context.Background(), Request{Prompt: "q"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenAIProvider_Aliases(t *testing.T) {
	tests := []struct{ model, want string }{
		{"gpt-mini", "gpt-4o-mini"},
		{"gpt", "gpt-4o"},
		{"gpt-4.1-nano", "gpt-4.1-nano"},
	}
	for _, tt := range tests {
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: tt.model})
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.ModelID())
		assert.Equal(t, ProviderOpenAI, p.Name())
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "gpt-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-mini", p.ModelID(), "OpenRouter model IDs are not aliased")
	assert.Equal(t, ProviderOpenRouter, p.Name())

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-001"})
	assert.ErrorContains(t, err, "openrouter API key is required")
}
