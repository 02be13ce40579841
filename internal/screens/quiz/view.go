package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/game"
	"github.com/hijaydeep/Trivia-Game/internal/ui/components"
	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.confirmingQuit:
		return renderQuitConfirm(width, height)
	case s.state.Err != nil:
		return renderError(width, height, s.state.Err)
	case s.state.Loading || s.state.Current == nil:
		return renderLoading(width, height, s.state.Number(), s.state.Total)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	st := s.state
	q := st.Current
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string

	sections = append(sections, center.Render(
		components.NewProgressTrack(s.results(), st.Index, st.Total).View(cw)))

	counter := fmt.Sprintf("%d of %d Questions", st.Number(), st.Total)
	if info := questionInfo(q.Category, q.Difficulty); info != "" {
		counter += "  ·  " + info
	}
	sections = append(sections, center.Foreground(theme.TextDim).Render(counter))

	sections = append(sections, components.Card(
		theme.QuestionText.Width(cw-8).Align(lipgloss.Center).Render(q.Text), cw))

	sections = append(sections, s.options.View(cw, st.OptionState))

	if st.Locked {
		sections = append(sections, center.Render(feedback(st)))
		sections = append(sections, center.Render(s.next.View()))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

// results lists the correctness of every scored question.
func (s *QuizScreen) results() []bool {
	out := make([]bool, len(s.state.Answers))
	for i, a := range s.state.Answers {
		out[i] = a.IsCorrect
	}
	return out
}

func feedback(st *game.State) string {
	if st.Current.IsCorrect(st.Selected) {
		return theme.Correct.Render("Correct!")
	}
	return theme.Incorrect.Render("Wrong!") +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(" The answer is "+st.Current.Correct)
}

func questionInfo(category, difficulty string) string {
	var parts []string
	if category != "" {
		parts = append(parts, category)
	}
	if difficulty != "" {
		parts = append(parts, strings.ToUpper(difficulty[:1])+difficulty[1:])
	}
	return strings.Join(parts, " · ")
}

func renderLoading(width, height, number, total int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Loading question %d of %d...", number, total)))
}

func renderError(width, height int, err error) string {
	msg := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render("Couldn't load a question") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-4, 70)).
			Render(err.Error()) + "\n\n" +
		theme.Hint.Render("Press r to retry or Esc to quit")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func renderQuitConfirm(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("End this game?") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Your progress will not be saved.") + "\n\n" +
		theme.Hint.Render("y to end, n to keep playing")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}
