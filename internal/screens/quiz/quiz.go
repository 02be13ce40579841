package quiz

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/hijaydeep/Trivia-Game/internal/game"
	"github.com/hijaydeep/Trivia-Game/internal/router"
	"github.com/hijaydeep/Trivia-Game/internal/screen"
	"github.com/hijaydeep/Trivia-Game/internal/screens/results"
	"github.com/hijaydeep/Trivia-Game/internal/store"
	"github.com/hijaydeep/Trivia-Game/internal/trivia"
	"github.com/hijaydeep/Trivia-Game/internal/ui/components"
	"github.com/hijaydeep/Trivia-Game/internal/ui/layout"
)

// fetchTimeout bounds one question fetch including its retries.
const fetchTimeout = 90 * time.Second

// Config holds what a quiz needs to run.
type Config struct {
	Source trivia.Source
	Games  store.GameRepo // nil disables saving
	Total  int

	// Recorded with the saved game.
	SourceName string
	Category   string
	Difficulty string

	Logger *zap.Logger
}

// QuizScreen plays one game: fetch, choose, reveal, next.
type QuizScreen struct {
	cfg     Config
	state   *game.State
	options components.OptionList
	next    components.Button

	confirmingQuit bool

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a quiz. The first question is fetched by Init.
func New(cfg Config) *QuizScreen {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &QuizScreen{
		cfg:    cfg,
		state:  game.New(cfg.Total),
		ctx:    ctx,
		cancel: cancel,
	}
	s.next = components.NewButton("Next", keys.Next, s.advance)
	s.next.Visible = false
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *QuizScreen) Title() string {
	return fmt.Sprintf("Question %d of %d", s.state.Number(), s.state.Total)
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("★ %d", s.state.Score)
}

// HandlesEscape is always true: Esc opens the quit prompt instead of
// leaving the game.
func (s *QuizScreen) HandlesEscape() bool {
	return true
}

// State exposes the game for inspection.
func (s *QuizScreen) State() *game.State {
	return s.state
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmingQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.state.Err != nil:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.state.Loading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quit"},
		}
	case s.state.Locked:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.nextLabel()},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "1-4", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionLoadedMsg:
		return s.handleLoaded(msg)

	case components.OptionChosenMsg:
		return s.handleChosen(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg questionLoadedMsg) (screen.Screen, tea.Cmd) {
	if !s.state.Accept(msg.Seq) {
		return s, nil
	}
	if msg.Err != nil {
		s.cfg.Logger.Warn("question fetch failed",
			zap.String("game", s.state.ID),
			zap.Int("question", s.state.Number()),
			zap.Error(msg.Err),
		)
		s.state.Fail(msg.Err)
		return s, nil
	}

	s.state.Load(msg.Question)
	s.options = components.NewOptionList(msg.Question.Options)
	s.next.Visible = false
	return s, nil
}

func (s *QuizScreen) handleChosen(msg components.OptionChosenMsg) (screen.Screen, tea.Cmd) {
	if !s.state.SelectIndex(msg.Index) {
		return s, nil
	}
	s.options.Locked = true
	s.options.Cursor = msg.Index
	s.next.Label = s.nextLabel()
	s.next.Visible = true
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.confirmingQuit {
		switch {
		case key.Matches(msg, keys.Yes):
			s.confirmingQuit = false
			s.cancel()
			return s, router.Pop()
		case key.Matches(msg, keys.No):
			s.confirmingQuit = false
		}
		return s, nil
	}

	if key.Matches(msg, keys.Quit) {
		s.confirmingQuit = true
		return s, nil
	}

	switch {
	case s.state.Err != nil:
		if key.Matches(msg, keys.Retry) {
			return s, s.fetch()
		}
		return s, nil
	case s.state.Loading || s.state.Current == nil:
		return s, nil
	case s.state.Locked:
		var cmd tea.Cmd
		s.next, cmd = s.next.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return s, cmd
}

func (s *QuizScreen) nextLabel() string {
	if s.state.IsLast() {
		return "Result"
	}
	return "Next"
}

// advance scores the locked answer and either fetches the next question or
// ends the game.
func (s *QuizScreen) advance() tea.Cmd {
	advanced, err := s.state.Next()
	if err != nil {
		return nil
	}
	s.next.Visible = false
	s.options = components.OptionList{}

	if advanced {
		return s.fetch()
	}
	return s.finish()
}

// fetch starts loading the current question.
func (s *QuizScreen) fetch() tea.Cmd {
	seq := s.state.BeginFetch()
	src := s.cfg.Source
	parent := s.ctx

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, fetchTimeout)
		defer cancel()

		q, err := src.Next(ctx)
		return questionLoadedMsg{Seq: seq, Question: q, Err: err}
	}
}

// finish saves the game and swaps this screen for the results.
func (s *QuizScreen) finish() tea.Cmd {
	sum := s.state.Summary()
	record := s.record()
	games := s.cfg.Games
	logger := s.cfg.Logger

	return func() tea.Msg {
		var saveErr error
		if games != nil {
			saveErr = games.SaveGame(context.Background(), record)
			if saveErr != nil {
				logger.Error("failed to save game", zap.String("game", record.ID), zap.Error(saveErr))
			}
		}

		r := results.New(sum, s.restart)
		r.SetSaveError(saveErr)
		return router.NavigateMsg{Action: router.ActionReplace, Screen: r}
	}
}

// restart resets the game in place and hands this screen back to the
// router; its Init fetches the first question of the new game.
func (s *QuizScreen) restart() screen.Screen {
	s.state.Reset()
	s.options = components.OptionList{}
	s.next.Visible = false
	s.confirmingQuit = false
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	return s
}

func (s *QuizScreen) record() *store.GameRecord {
	st := s.state
	answers := make([]store.AnswerRecord, 0, len(st.Answers))
	for _, a := range st.Answers {
		answers = append(answers, store.AnswerRecord{
			Position:      a.Position,
			Question:      a.Question,
			Category:      a.Category,
			Difficulty:    a.Difficulty,
			CorrectAnswer: a.Correct,
			Selected:      a.Selected,
			Correct:       a.IsCorrect,
		})
	}
	return &store.GameRecord{
		ID:         st.ID,
		Source:     s.cfg.SourceName,
		Category:   s.cfg.Category,
		Difficulty: s.cfg.Difficulty,
		StartedAt:  st.StartedAt,
		FinishedAt: st.FinishedAt,
		Score:      st.Score,
		Total:      st.Total,
		Answers:    answers,
	}
}
