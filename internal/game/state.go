package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hijaydeep/Trivia-Game/internal/trivia"
)

// DefaultTotal is the number of rounds in a game.
const DefaultTotal = 10

var (
	// ErrNotLocked is returned by Next before an answer has been chosen.
	ErrNotLocked = errors.New("no answer selected")

	// ErrFinished is returned by Next once the last question has been scored.
	ErrFinished = errors.New("game is finished")
)

// OptionState describes how an option should be rendered.
type OptionState int

const (
	OptionNeutral OptionState = iota
	OptionSelected
	OptionCorrect
	OptionWrong
)

// Answer records the outcome of one question.
type Answer struct {
	Position   int
	Question   string
	Category   string
	Difficulty string
	Correct    string
	Selected   string
	IsCorrect  bool
	AnsweredAt time.Time
}

// State is a single play-through: the current question, the locked
// selection and the running score.
type State struct {
	ID    string
	Total int

	// Index is the 0-based position of the current question.
	Index int
	Score int

	Current  *trivia.Question
	Selected string
	Locked   bool

	// Loading is true while a question fetch is in flight.
	Loading bool
	Err     error

	Finished bool
	Answers  []Answer

	StartedAt  time.Time
	FinishedAt time.Time

	fetchSeq int
	now      func() time.Time
}

// New creates a game of total questions waiting for its first question.
// A non-positive total falls back to DefaultTotal.
func New(total int) *State {
	if total <= 0 {
		total = DefaultTotal
	}
	s := &State{Total: total, now: time.Now}
	s.start()
	return s
}

func (s *State) start() {
	s.ID = uuid.NewString()
	s.Index = 0
	s.Score = 0
	s.clearQuestion()
	s.Err = nil
	s.Finished = false
	s.Answers = nil
	s.StartedAt = s.now()
	s.FinishedAt = time.Time{}
	s.Loading = true
}

func (s *State) clearQuestion() {
	s.Current = nil
	s.Selected = ""
	s.Locked = false
}

// BeginFetch marks a fetch as started and returns its sequence number.
// Only the latest sequence is accepted.
func (s *State) BeginFetch() int {
	s.fetchSeq++
	s.Loading = true
	s.Err = nil
	return s.fetchSeq
}

// Accept reports whether a fetch result with seq is still wanted.
func (s *State) Accept(seq int) bool {
	return seq == s.fetchSeq && !s.Finished
}

// Load shows q as the current question.
func (s *State) Load(q *trivia.Question) {
	s.Current = q
	s.Selected = ""
	s.Locked = false
	s.Loading = false
	s.Err = nil
}

// Fail records a failed fetch.
func (s *State) Fail(err error) {
	s.Loading = false
	s.Err = err
}

// Select chooses option and locks the question. It returns false when the
// selection was ignored.
func (s *State) Select(option string) bool {
	if s.Locked || s.Loading || s.Finished || s.Current == nil {
		return false
	}
	if !s.Current.HasOption(option) {
		return false
	}
	s.Selected = option
	s.Locked = true
	return true
}

// SelectIndex selects the option at display index i.
func (s *State) SelectIndex(i int) bool {
	if s.Current == nil || i < 0 || i >= len(s.Current.Options) {
		return false
	}
	return s.Select(s.Current.Options[i])
}

// IsLast reports whether the current question is the final one.
func (s *State) IsLast() bool {
	return s.Index+1 >= s.Total
}

// Number is the 1-based question number for display.
func (s *State) Number() int {
	return s.Index + 1
}

// Next scores the locked answer and moves on. advanced is true when another
// question should be fetched; false means the game just finished.
func (s *State) Next() (advanced bool, err error) {
	if s.Finished {
		return false, ErrFinished
	}
	if !s.Locked || s.Current == nil {
		return false, ErrNotLocked
	}

	correct := s.Current.IsCorrect(s.Selected)
	if correct {
		s.Score++
	}
	s.Answers = append(s.Answers, Answer{
		Position:   s.Index + 1,
		Question:   s.Current.Text,
		Category:   s.Current.Category,
		Difficulty: s.Current.Difficulty,
		Correct:    s.Current.Correct,
		Selected:   s.Selected,
		IsCorrect:  correct,
		AnsweredAt: s.now(),
	})

	if s.IsLast() {
		s.Finished = true
		s.FinishedAt = s.now()
		s.Loading = false
		return false, nil
	}

	s.Index++
	s.clearQuestion()
	s.Loading = true
	return true, nil
}

// Reset starts a new game with the same total. Pending fetches from the
// previous game are invalidated by the caller's next BeginFetch.
func (s *State) Reset() {
	s.start()
}

// OptionState returns how option should be shown for the current question.
func (s *State) OptionState(option string) OptionState {
	if s.Current == nil {
		return OptionNeutral
	}
	if !s.Locked {
		if option == s.Selected && option != "" {
			return OptionSelected
		}
		return OptionNeutral
	}
	switch {
	case option == s.Current.Correct:
		return OptionCorrect
	case option == s.Selected:
		return OptionWrong
	}
	return OptionNeutral
}
