package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hijaydeep/Trivia-Game/internal/router"
	"github.com/hijaydeep/Trivia-Game/internal/screen"
	"github.com/hijaydeep/Trivia-Game/internal/screens/history"
	"github.com/hijaydeep/Trivia-Game/internal/selfupdate"
	"github.com/hijaydeep/Trivia-Game/internal/store"
	"github.com/hijaydeep/Trivia-Game/internal/ui/components"
	"github.com/hijaydeep/Trivia-Game/internal/ui/layout"
)

const updateCheckTimeout = 5 * time.Second

// UpdateChecker reports whether a newer release exists.
type UpdateChecker interface {
	Check(ctx context.Context, input *selfupdate.CheckInput) (*selfupdate.CheckResult, error)
}

// Options wires the home screen to the rest of the app.
type Options struct {
	// NewQuiz builds a fresh quiz screen for every Play.
	NewQuiz func() screen.Screen

	// Games backs the stats bar and the history screen; nil hides both.
	Games store.GameRepo

	// SourceLabel names where questions come from, e.g. "Open Trivia DB".
	SourceLabel string

	// Checker and Version enable the update notice; both are optional.
	Checker UpdateChecker
	Version string
}

type lastGame struct {
	score, total int
}

type statsLoadedMsg struct {
	Stats *store.GameStats
	Last  *lastGame
	Err   error
}

type updateCheckedMsg struct {
	Latest string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts         Options
	menu         components.Menu
	stats        *store.GameStats
	mascot       MascotVariant
	latest       string
	checkStarted bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{Label: "PLAY", Action: h.play, Disabled: opts.NewQuiz == nil},
		{Label: "HISTORY", Action: h.history, Disabled: opts.Games == nil},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) play() tea.Cmd {
	quiz := h.opts.NewQuiz()
	return router.Push(quiz)
}

func (h *HomeScreen) history() tea.Cmd {
	scr := history.New(h.opts.Games)
	return router.Push(scr)
}

func (h *HomeScreen) Init() tea.Cmd {
	return tea.Batch(h.loadStats(), h.checkUpdate())
}

// Resume refreshes the stats when returning from a game or the history.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	games := h.opts.Games
	if games == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := games.Stats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		msg := statsLoadedMsg{Stats: stats}
		recent, err := games.ListGames(ctx, store.QueryOpts{Limit: 1})
		if err == nil && len(recent) > 0 {
			msg.Last = &lastGame{score: recent[0].Score, total: recent[0].Total}
		}
		return msg
	}
}

// checkUpdate runs at most once per process; failures are silent.
func (h *HomeScreen) checkUpdate() tea.Cmd {
	if h.opts.Checker == nil || h.checkStarted {
		return nil
	}
	h.checkStarted = true
	checker, version := h.opts.Checker, h.opts.Version
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil || !res.UpdateAvailable {
			return nil
		}
		return updateCheckedMsg{Latest: res.LatestVersion}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err == nil {
			h.stats = msg.Stats
			h.mascot = mascotFor(msg.Last)
		}
		return h, nil
	case updateCheckedMsg:
		h.latest = msg.Latest
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}

	if h.opts.Games != nil {
		sections = append(sections, components.StatsBox(statsLine(h.stats, compact), cw))
	}

	sections = append(sections, h.menu.View(cw))

	if h.opts.SourceLabel != "" {
		sections = append(sections, renderNote("Questions from "+h.opts.SourceLabel, cw))
	}
	if h.latest != "" {
		sections = append(sections, renderNote(
			fmt.Sprintf("New version %s available, run `trivia update`", h.latest), cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
