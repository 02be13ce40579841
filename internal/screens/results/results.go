package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/game"
	"github.com/hijaydeep/Trivia-Game/internal/router"
	"github.com/hijaydeep/Trivia-Game/internal/screen"
	"github.com/hijaydeep/Trivia-Game/internal/ui/components"
	"github.com/hijaydeep/Trivia-Game/internal/ui/layout"
	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

type keyMap struct {
	PlayAgain key.Binding
	Up        key.Binding
	Down      key.Binding
}

var keys = keyMap{
	PlayAgain: key.NewBinding(key.WithKeys("enter", "p")),
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
}

// ResultsScreen shows the final score of a finished game.
type ResultsScreen struct {
	summary   *game.Summary
	playAgain func() screen.Screen
	saveErr   error
	offset    int // first recap row shown
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. playAgain builds the screen that replaces
// this one when the player starts over; nil hides the option.
func New(summary *game.Summary, playAgain func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{summary: summary, playAgain: playAgain}
}

// SetSaveError marks the game as not stored in history.
func (s *ResultsScreen) SetSaveError(err error) {
	s.saveErr = err
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.playAgain != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Play Again"})
	}
	return append(hints,
		layout.KeyHint{Key: "↑↓", Description: "Scroll"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, keys.PlayAgain):
		if s.playAgain == nil {
			return s, nil
		}
		next := s.playAgain()
		return s, router.Replace(next)
	case key.Matches(kmsg, keys.Up):
		if s.offset > 0 {
			s.offset--
		}
	case key.Matches(kmsg, keys.Down):
		if s.summary != nil && s.offset < len(s.summary.Answers)-1 {
			s.offset++
		}
	}
	return s, nil
}

// Headline is the score line shown at the top.
func Headline(sum *game.Summary) string {
	return fmt.Sprintf("You Scored %d out of %d", sum.Score, sum.Total)
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string

	sections = append(sections, center.
		Foreground(theme.Gold).
		Bold(true).
		Render(Headline(sum)))

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Accuracy %.0f%%   Time %d:%02d   %s",
		sum.Accuracy*100, mins, secs, verdict(sum))
	sections = append(sections, components.StatsBox(stats, cw))

	if s.saveErr != nil {
		sections = append(sections, center.
			Foreground(theme.Error).
			Render("Could not save this game to history"))
	}

	// Header, stats box, gaps and the play-again line take roughly 12 rows.
	rows := max(height-12, 3)
	sections = append(sections, s.renderRecap(cw, rows))

	if s.playAgain != nil {
		sections = append(sections, components.ArcadeButton("PLAY AGAIN", true, 22))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *ResultsScreen) renderRecap(cw, rows int) string {
	answers := s.summary.Answers
	if len(answers) == 0 {
		return ""
	}

	start := min(s.offset, len(answers)-1)
	end := min(start+rows, len(answers))

	lines := make([]string, 0, end-start)
	for _, a := range answers[start:end] {
		lines = append(lines, recapLine(a, cw))
	}
	return strings.Join(lines, "\n")
}

func recapLine(a game.Answer, cw int) string {
	mark := theme.Correct.Render("✓")
	detail := ""
	if !a.IsCorrect {
		mark = theme.Incorrect.Render("✗")
		detail = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("  → " + a.Correct)
	}

	q := truncate(a.Question, cw-lipgloss.Width(detail)-8)
	return fmt.Sprintf("%2d %s %s%s", a.Position, mark, q, detail)
}

func verdict(sum *game.Summary) string {
	switch {
	case sum.Total > 0 && sum.Score == sum.Total:
		return "Perfect!"
	case sum.Accuracy >= 0.7:
		return "Great job!"
	case sum.Accuracy >= 0.4:
		return "Not bad!"
	default:
		return "Keep practicing!"
	}
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
