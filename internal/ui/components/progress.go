package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

// ProgressTrack shows one cell per question: answered cells are green or
// red, the current one gold and the rest empty.
type ProgressTrack struct {
	Results []bool // correctness of answered questions, in order
	Current int    // 0-based index of the question on screen
	Total   int
}

// NewProgressTrack creates a track for total questions.
func NewProgressTrack(results []bool, current, total int) ProgressTrack {
	return ProgressTrack{
		Results: results,
		Current: current,
		Total:   total,
	}
}

// View renders the cells followed by "N/TOTAL", fitting into width.
func (p ProgressTrack) View(width int) string {
	if p.Total <= 0 {
		return ""
	}

	counter := fmt.Sprintf("  %d/%d", min(p.Current+1, p.Total), p.Total)
	cellWidth := 2
	if p.Total*(cellWidth+1)+len(counter) > width {
		cellWidth = 1
	}

	var b strings.Builder
	for i := range p.Total {
		var st lipgloss.Style
		switch {
		case i < len(p.Results) && p.Results[i]:
			st = lipgloss.NewStyle().Background(theme.Success)
		case i < len(p.Results):
			st = lipgloss.NewStyle().Background(theme.Error)
		case i == p.Current:
			st = lipgloss.NewStyle().Background(theme.Gold)
		default:
			st = lipgloss.NewStyle().Background(theme.Border)
		}
		b.WriteString(st.Render(strings.Repeat(" ", cellWidth)))
		if cellWidth > 1 && i < p.Total-1 {
			b.WriteString(" ")
		}
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter))
	return b.String()
}
