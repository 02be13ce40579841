package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuestion = `{"question":"Which planet is largest?","correct":"Jupiter","incorrect":["Mars","Venus","Earth"]}`

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	return p
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(status int, typ string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": typ, "message": typ},
		})
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var body map[string]any
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicReply(sampleQuestion, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write trivia questions.",
		Prompt:    "One question.",
		Schema:    questionSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, sampleQuestion, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30}, resp.Usage)
	assert.Equal(t, "claude-haiku-4-5", resp.Model)

	assert.Equal(t, "claude-haiku-4-5", body["model"])
	msgs, _ := body["messages"].([]any)
	assert.Len(t, msgs, 1)
	assert.Contains(t, body, "output_config")
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicReply(`{"question":"Which pla`, "max_tokens"))
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "q", MaxTokens: 5})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		typ    string
		want   error
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_error", ErrRateLimited},
		{"server error", http.StatusInternalServerError, "api_error", ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropic(t, anthropicError(tt.status, tt.typ))
			_, err := p.Generate(context.Background(), Request{Prompt: "q", MaxTokens: 100})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAnthropicAliases(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5", resolveModel("claude-haiku", anthropicAliases))
	assert.Equal(t, "claude-sonnet-4-5", resolveModel("claude-sonnet", anthropicAliases))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicAliases))

	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
}
