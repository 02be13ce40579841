package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/router"
	"github.com/hijaydeep/Trivia-Game/internal/screen"
	"github.com/hijaydeep/Trivia-Game/internal/store"
	"github.com/hijaydeep/Trivia-Game/internal/ui/components"
	"github.com/hijaydeep/Trivia-Game/internal/ui/layout"
	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

// maxGames is how many recent games the screen loads.
const maxGames = 50

type historyLoadedMsg struct {
	Games []store.GameRecord
	Err   error
}

type answersLoadedMsg struct {
	GameID  string
	Answers []store.AnswerRecord
	Err     error
}

// HistoryScreen lists past games; Enter expands one to show its answers.
type HistoryScreen struct {
	games    store.GameRepo
	records  []store.GameRecord
	answers  map[string][]store.AnswerRecord
	selected int
	expanded map[string]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(games store.GameRepo) *HistoryScreen {
	return &HistoryScreen{
		games:    games,
		answers:  make(map[string][]store.AnswerRecord),
		expanded: make(map[string]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	games := s.games
	return func() tea.Msg {
		records, err := games.ListGames(context.Background(), store.QueryOpts{Limit: maxGames})
		return historyLoadedMsg{Games: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Games
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.GameID] = msg.Answers
		return s, nil

	case tea.KeyPressMsg:
		k := components.DefaultOptionKeys
		switch {
		case msg.String() == "esc":
			return s, router.Pop()
		case key.Matches(msg, k.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, k.Down):
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case key.Matches(msg, k.Choose):
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected game, loading its answers the
// first time it is opened.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.records) {
		return nil
	}
	id := s.records[s.selected].ID
	s.expanded[id] = !s.expanded[id]
	if !s.expanded[id] {
		return nil
	}
	if _, ok := s.answers[id]; ok {
		return nil
	}

	games := s.games
	return func() tea.Msg {
		answers, err := games.GameAnswers(context.Background(), id)
		return answersLoadedMsg{GameID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Press Esc and play one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.records {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+gameLine(g))))
		b.WriteString("\n")

		if s.expanded[g.ID] {
			b.WriteString(s.renderAnswers(g.ID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(id string, width int) string {
	answers, ok := s.answers[id]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading answers...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		line := fmt.Sprintf("    %2d. %s  %s", a.Position, a.Question, a.Selected)
		st := theme.Correct
		if !a.Correct {
			line += fmt.Sprintf(" (answer: %s)", a.CorrectAnswer)
			st = theme.Incorrect
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, st.UnsetBold().Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func gameLine(g store.GameRecord) string {
	var accuracy float64
	if g.Total > 0 {
		accuracy = float64(g.Score) / float64(g.Total) * 100
	}
	d := g.FinishedAt.Sub(g.StartedAt)
	return fmt.Sprintf("%s  %-8s  %2d/%-2d  %3.0f%%  %d:%02d",
		g.FinishedAt.Local().Format("Jan 02, 2006 15:04"),
		g.Source, g.Score, g.Total, accuracy,
		int(d.Minutes()), int(d.Seconds())%60)
}
