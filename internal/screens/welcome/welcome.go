package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/router"
	"github.com/hijaydeep/Trivia-Game/internal/screen"
	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	cardsEnd     = 600 * time.Millisecond
	bannerEnd    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bannerArt = `████████╗██████╗ ██╗██╗   ██╗██╗ █████╗
╚══██╔══╝██╔══██╗██║██║   ██║██║██╔══██╗
   ██║   ██████╔╝██║██║   ██║██║███████║
   ██║   ██╔══██╗██║╚██╗ ██╔╝██║██╔══██║
   ██║   ██║  ██║██║ ╚████╔╝ ██║██║  ██║
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "T R I V I A"

const tagline = "How much do you really know?"

// cards are revealed one per tick during the first phase.
var cards = []string{"A", "B", "C", "D"}

type tickMsg time.Time

// WelcomeScreen shows a short splash before handing over to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by homeFactory() on the
// first key press.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

// transition swaps in the home screen once; later calls are no-ops.
func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, w.renderCards())

	if w.elapsed >= bannerEnd {
		banner := bannerArt
		if width < 44 {
			banner = bannerCompact
		}
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(banner),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

// renderCards draws the A-D answer cards; one appears per tick and, once all
// are shown, a highlight cycles through them.
func (w *WelcomeScreen) renderCards() string {
	shown := len(cards)
	if w.elapsed < cardsEnd {
		shown = min(w.tickCount, len(cards))
	}

	boxes := make([]string, 0, len(cards))
	for i, c := range cards {
		style := theme.OptionNeutral
		switch {
		case i >= shown:
			style = theme.OptionDimmed
			c = " "
		case w.elapsed >= cardsEnd && i == w.tickCount%len(cards):
			style = theme.OptionCursor
		}
		boxes = append(boxes, style.Render(" "+c+" "))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, boxes...)
}
