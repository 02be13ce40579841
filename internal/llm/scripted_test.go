package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripted_RepliesInOrder(t *testing.T) {
	s := NewScripted(
		Step{Content: json.RawMessage(`{"n":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		Step{Content: json.RawMessage(`{"n":2}`)},
	)

	r1, err := s.Generate(context.Background(), Request{Prompt: "first"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(r1.Content))
	assert.Equal(t, 15, r1.Usage.Total())
	assert.Equal(t, "mock", r1.Model)

	r2, err := s.Generate(context.Background(), Request{Prompt: "second"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(r2.Content))

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "second", reqs[1].Prompt)
}

func TestScripted_Exhausted(t *testing.T) {
	s := NewScripted()
	_, err := s.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, s.Calls())

	s.Push(Step{Content: json.RawMessage(`{}`)})
	_, err = s.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestScripted_ReturnsStepError(t *testing.T) {
	s := NewScripted(Step{Err: &Error{Kind: KindRateLimited, Err: errors.New("429")}})
	_, err := s.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestScripted_ValidatesSchema(t *testing.T) {
	s := NewScripted(Step{Content: json.RawMessage(`{"question":""}`)})
	_, err := s.Generate(context.Background(), Request{Schema: questionSchema()})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestPurpose(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "question-gen", PurposeFrom(WithPurpose(ctx, "question-gen")))
}
