package trivia

import (
	"context"
	"sync"
)

// StaticSource serves a fixed list of questions in order, then wraps around
// when Loop is set. It is used by tests and the offline demo.
type StaticSource struct {
	mu        sync.Mutex
	questions []*Question
	pos       int
	Loop      bool
}

// NewStaticSource creates a StaticSource over the given questions.
func NewStaticSource(questions ...*Question) *StaticSource {
	return &StaticSource{questions: questions}
}

func (s *StaticSource) Next(ctx context.Context) (*Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.questions) {
		if !s.Loop || len(s.questions) == 0 {
			return nil, ErrNoQuestions
		}
		s.pos = 0
	}
	q := *s.questions[s.pos]
	q.Options = append([]string(nil), q.Options...)
	s.pos++
	return &q, nil
}

// Served returns how many questions have been handed out since the last wrap.
func (s *StaticSource) Served() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
