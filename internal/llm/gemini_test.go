package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "test-key", Model: "gemini-flash"},
		&genai.ClientConfig{HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"}})
	require.NoError(t, err)
	return p
}

func TestGeminiProvider_Generate(t *testing.T) {
	var path string
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": sampleQuestion}}},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20},
		})
	})

	resp, err := p.Generate(context.Background(), Request{Prompt: "One question.", Schema: questionSchema(), MaxTokens: 256})
	require.NoError(t, err)
	assert.JSONEq(t, sampleQuestion, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 12, OutputTokens: 8}, resp.Usage)
	assert.True(t, strings.Contains(path, "gemini-2.5-flash:generateContent"), "path %s", path)
}

func TestGeminiProvider_ServerError(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "q"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeminiAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiAliases))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiAliases))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiAliases))
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":   map[string]any{"type": "string", "description": "prompt"},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			"incorrect": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
				"maxItems": float64(3),
			},
			"points": map[string]any{"type": "integer"},
			"odd":    map[string]any{"type": "null"},
		},
		"required": []string{"question", "incorrect"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 5)
	assert.Equal(t, "prompt", s.Properties["question"].Description)
	assert.Equal(t, genai.TypeInteger, s.Properties["points"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["odd"].Type, "unknown types fall back to string")
	assert.Equal(t, []string{"easy", "medium", "hard"}, s.Properties["difficulty"].Enum)

	inc := s.Properties["incorrect"]
	assert.Equal(t, genai.TypeArray, inc.Type)
	assert.Equal(t, genai.TypeString, inc.Items.Type)
	require.NotNil(t, inc.MinItems)
	require.NotNil(t, inc.MaxItems)
	assert.Equal(t, int64(1), *inc.MinItems)
	assert.Equal(t, int64(3), *inc.MaxItems)
	assert.Equal(t, []string{"question", "incorrect"}, s.Required)
}
