package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

const (
	// buttonWidth is the width of every menu button.
	buttonWidth = 22

	// Bounds of the shared content column, see ContentWidth.
	minContentWidth = 20
	maxContentWidth = 72
)

// ContentWidth returns the column width shared by the boxed sections of a
// screen frameWidth wide, leaving room for the cabinet border and padding.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// box is the bordered base style every component here builds on.
func box(border lipgloss.Border, c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(border).BorderForeground(c)
}

// CabinetFrame centres content inside a double border filling width×height.
func CabinetFrame(content string, width, height int) string {
	return box(lipgloss.DoubleBorder(), theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card is a padded rounded box cw columns wide.
func Card(content string, cw int) string {
	return box(lipgloss.RoundedBorder(), theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// StatsBox is a one-line double-bordered summary cw columns wide.
func StatsBox(content string, cw int) string {
	return box(lipgloss.DoubleBorder(), theme.Cyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// ArcadeButton renders a menu button; the selected one is filled gold.
func ArcadeButton(label string, selected bool, width int) string {
	st := box(lipgloss.RoundedBorder(), theme.Border).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1).
		Foreground(theme.Text)
	if selected {
		st = st.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Gold).
			BorderForeground(theme.Gold)
		label = "▸ " + label
	}
	return st.Render(label)
}
