package results

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hijaydeep/Trivia-Game/internal/game"
	"github.com/hijaydeep/Trivia-Game/internal/router"
	"github.com/hijaydeep/Trivia-Game/internal/screen"
)

type stubScreen struct{ inits int }

func (s *stubScreen) Init() tea.Cmd                           { s.inits++; return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

func testSummary() *game.Summary {
	return &game.Summary{
		GameID:   "g1",
		Score:    7,
		Total:    10,
		Answered: 10,
		Accuracy: 0.7,
		Duration: 3*time.Minute + 5*time.Second,
		Answers: []game.Answer{
			{Position: 1, Question: "Capital of France?", Correct: "Paris", Selected: "Paris", IsCorrect: true},
			{Position: 2, Question: "Largest planet?", Correct: "Jupiter", Selected: "Mars"},
		},
	}
}

func TestResultsScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestResultsScreen_Display(t *testing.T) {
	s := New(testSummary(), func() screen.Screen { return &stubScreen{} })
	view := s.View(100, 30)

	for _, want := range []string{"You Scored 7 out of 10", "Accuracy 70%", "3:05", "Largest planet?", "Jupiter", "PLAY AGAIN"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultsScreen_PlayAgain(t *testing.T) {
	calls := 0
	next := &stubScreen{}
	s := New(testSummary(), func() screen.Screen {
		calls++
		return next
	})

	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: 'p', Text: "p"}} {
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatal("expected a command")
		}
		msg, ok := cmd().(router.NavigateMsg)
		if !ok {
			t.Fatalf("expected NavigateMsg, got %T", cmd())
		}
		if msg.Screen != next {
			t.Error("expected the play-again screen")
		}
	}
	if calls != 2 {
		t.Errorf("playAgain called %d times, want 2", calls)
	}
}

func TestResultsScreen_NoPlayAgain(t *testing.T) {
	s := New(testSummary(), nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command without a play-again factory")
	}
	if strings.Contains(s.View(100, 30), "PLAY AGAIN") {
		t.Error("play again should be hidden")
	}
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}

func TestResultsScreen_Scroll(t *testing.T) {
	s := New(testSummary(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1 (clamped)", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
}

func TestResultsScreen_SaveError(t *testing.T) {
	s := New(testSummary(), nil)
	s.SetSaveError(errors.New("disk full"))
	if !strings.Contains(s.View(100, 30), "Could not save") {
		t.Error("expected save failure notice")
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		score, total int
		want         string
	}{
		{10, 10, "Perfect!"},
		{7, 10, "Great job!"},
		{4, 10, "Not bad!"},
		{1, 10, "Keep practicing!"},
	}
	for _, tt := range tests {
		sum := &game.Summary{Score: tt.score, Total: tt.total, Accuracy: float64(tt.score) / float64(tt.total)}
		if got := verdict(sum); got != tt.want {
			t.Errorf("verdict(%d/%d) = %q, want %q", tt.score, tt.total, got, tt.want)
		}
	}
}
