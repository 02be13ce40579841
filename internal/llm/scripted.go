package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Step is one scripted reply: either Content or Err.
type Step struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Scripted replays a fixed list of replies in order and records every
// request. It backs the "mock" provider and tests.
type Scripted struct {
	mu    sync.Mutex
	steps []Step
	reqs  []Request
}

// NewScripted returns a provider that answers with steps in order. Once
// they run out every call fails with KindUnavailable.
func NewScripted(steps ...Step) *Scripted {
	return &Scripted{steps: steps}
}

func (s *Scripted) Generate(_ context.Context, req Request) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reqs = append(s.reqs, req)
	if len(s.steps) == 0 {
		return nil, &Error{Kind: KindUnavailable}
	}

	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.Err != nil {
		return nil, step.Err
	}
	return finish(req, step.Content, false, step.Usage, "mock")
}

func (s *Scripted) Name() string    { return ProviderMock }
func (s *Scripted) ModelID() string { return "mock" }

// Push appends more replies.
func (s *Scripted) Push(steps ...Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, steps...)
}

// Requests returns a copy of the requests received so far.
func (s *Scripted) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.reqs...)
}

// Calls is the number of Generate calls so far.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}
