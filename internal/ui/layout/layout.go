// Package layout draws the header and footer bars around every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below these the decorated screens switch to their compact form.
	CompactWidth  = 100
	CompactHeight = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether width×height is too small for the decorated
// layouts.
func IsCompact(width, height int) bool {
	return width < CompactWidth || height < CompactHeight
}

// IsTooSmall reports whether the terminal is below the playable size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Frame is the chrome around the active screen.
type Frame struct {
	Title  string
	Status string // right side of the header, e.g. the running score
	Hints  []KeyHint
}

// Render draws the frame at width×height. body renders the screen into
// the space left between the bars.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	if IsTooSmall(width, height) {
		return tooSmall(width, height)
	}

	header := bar(width, f.header(max(width-4, 0)))
	footer := bar(width, "  "+f.footer())
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(h).Render(body(width, h))
	return header + "\n" + content + "\n" + footer
}

// header centres the title between the app name and the status.
func (f Frame) header(inner int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Trivia")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	status := ""
	if f.Status != "" {
		status = lipgloss.NewStyle().Foreground(theme.Gold).Render(f.Status)
	}

	nw, tw, sw := lipgloss.Width(name), lipgloss.Width(title), lipgloss.Width(status)
	left := max((inner-tw)/2-nw, 1)
	right := max(inner-nw-left-tw-sw, 1)
	return name + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + status
}

func (f Frame) footer() string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return strings.Join(parts, "   ")
}

func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

func tooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height))
}
