package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/store"
	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

const arcadeTitleFull = `████████╗██████╗ ██╗██╗   ██╗██╗ █████╗
╚══██╔══╝██╔══██╗██║██║   ██║██║██╔══██╗
   ██║   ██████╔╝██║██║   ██║██║███████║
   ██║   ██╔══██╗██║╚██╗ ██╔╝██║██╔══██║
   ██║   ██║  ██║██║ ╚████╔╝ ██║██║  ██║
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝  ╚═╝╚═╝  ╚═╝`

const arcadeTitleCompact = "T · R · I · V · I · A"

// renderTitle returns the block-letter title or its compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// statsLine summarizes all stored games.
func statsLine(stats *store.GameStats, compact bool) string {
	gameStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Cyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	if stats == nil || stats.Games == 0 {
		return dimStyle.Render("No games played yet")
	}

	best := fmt.Sprintf("%d/%d", stats.BestScore, stats.BestTotal)
	if compact {
		return fmt.Sprintf("%s %s %s",
			gameStyle.Render(fmt.Sprintf("▶%d", stats.Games)),
			accStyle.Render(fmt.Sprintf("✓%.0f%%", stats.Accuracy*100)),
			bestStyle.Render("★"+best),
		)
	}
	return fmt.Sprintf("%s  %s  %s",
		gameStyle.Render(fmt.Sprintf("▶ %d PLAYED", stats.Games)),
		accStyle.Render(fmt.Sprintf("✓ %.0f%% CORRECT", stats.Accuracy*100)),
		bestStyle.Render("★ BEST "+best),
	)
}

// renderNote renders a dim one-line note under the menu.
func renderNote(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox centers the mascot at the content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
