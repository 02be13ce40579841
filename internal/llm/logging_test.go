package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hijaydeep/Trivia-Game/internal/store"
)

// recordingRepo is an in-memory store.EventRepo.
type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func (r *recordingRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (r *recordingRepo) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByPurpose(context.Context) ([]store.LLMPurposeUsage, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	s := NewScripted(Step{
		Content: json.RawMessage(`{"question":"Q"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(s, repo, nil)

	ctx := WithPurpose(context.Background(), "question-gen")
	_, err := p.Generate(ctx, Request{
		System: "You write trivia.",
		Prompt: "One question please.",
		Schema: NewSchema("trivia-question", "", map[string]any{"type": "object"}),
	})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	e := repo.events[0]
	assert.Equal(t, "question-gen", e.Purpose)
	assert.Equal(t, ProviderMock, e.Provider)
	assert.True(t, e.Success)
	assert.Equal(t, 12, e.InputTokens)
	assert.Equal(t, 7, e.OutputTokens)
	assert.Equal(t, "mock", e.Model)
	assert.Contains(t, e.RequestBody, "[system]\nYou write trivia.")
	assert.Contains(t, e.RequestBody, "[user]\nOne question please.")
	assert.Contains(t, e.RequestBody, "[schema: trivia-question]")
	assert.Equal(t, `{"question":"Q"}`, e.ResponseBody)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	s := NewScripted(Step{Err: &Error{Kind: KindRateLimited, Err: errors.New("slow down")}})
	p := WithLogging(s, repo, nil)

	_, err := p.Generate(context.Background(), Request{Prompt: "q"})
	require.ErrorIs(t, err, ErrRateLimited)
	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Contains(t, repo.events[0].ErrorMessage, "slow down")
	assert.Equal(t, "unknown", repo.events[0].Purpose)
	assert.NotContains(t, repo.events[0].RequestBody, "[system]")
}

func TestLoggingProvider_RepoErrorIgnored(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewScripted(Step{Content: json.RawMessage(`{}`)}), repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}
