// Package screen defines the contract between the app frame and the
// screens it hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hijaydeep/Trivia-Game/internal/ui/layout"
)

// Screen is one page of the app: home, quiz, results, history.
type Screen interface {
	// Init runs each time the router makes the screen active by push or
	// replace. A replayed quiz fetches its first question here.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and footer bars.
	View(width, height int) string

	// Title is shown centred in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a short
// status, such as the running score, on the right of the header.
type StatusProvider interface {
	Status() string
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Resumer is implemented by screens that refresh themselves when they
// become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
