package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion per call.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the backend name, e.g. "anthropic".
	Name() string

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt. Every question is generated from one
// system prompt and one user prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the backend for JSON output and validates it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the backend default.
	Temperature float64
}

// Response is the model output.
type Response struct {
	// Content is the JSON document (or raw text when no schema was given).
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage reports token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// resolveModel maps a short alias to a full model ID. Unknown names pass
// through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// finish validates content against the request schema and builds the
// response. A truncated completion is reported as KindTruncated.
func finish(req Request, content json.RawMessage, truncated bool, usage Usage, model string) (*Response, error) {
	if truncated {
		return nil, &Error{Kind: KindTruncated, Content: content}
	}
	if req.Schema != nil {
		if err := req.Schema.Validate(content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model}, nil
}
