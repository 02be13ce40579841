// Package router keeps the stack of screens the app navigates through.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hijaydeep/Trivia-Game/internal/screen"
)

// Action is a change to the screen stack.
type Action int

const (
	// ActionPush opens a screen on top of the current one.
	ActionPush Action = iota
	// ActionPop closes the current screen. The root is never popped.
	ActionPop
	// ActionReplace swaps the current screen, keeping the depth. A
	// finished quiz hands over to its results this way.
	ActionReplace
)

// NavigateMsg asks the router to change the stack. Screen is unused for
// ActionPop.
type NavigateMsg struct {
	Action Action
	Screen screen.Screen
}

// Push returns a command that opens s.
func Push(s screen.Screen) tea.Cmd { return navigate(ActionPush, s) }

// Pop returns a command that closes the current screen.
func Pop() tea.Cmd { return navigate(ActionPop, nil) }

// Replace returns a command that swaps the current screen for s.
func Replace(s screen.Screen) tea.Cmd { return navigate(ActionReplace, s) }

func navigate(a Action, s screen.Screen) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Action: a, Screen: s} }
}

// Router holds the screen stack. It always contains at least the root.
type Router struct {
	stack []screen.Screen
}

// New creates a Router showing root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Apply performs msg and returns the Init or Resume command of the screen
// that becomes active.
func (r *Router) Apply(msg NavigateMsg) tea.Cmd {
	top := len(r.stack) - 1
	switch msg.Action {
	case ActionPush:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case ActionReplace:
		r.stack[top] = msg.Screen
		return msg.Screen.Init()
	case ActionPop:
		if top == 0 {
			return nil
		}
		r.stack = r.stack[:top]
		if s, ok := r.Active().(screen.Resumer); ok {
			return s.Resume()
		}
	}
	return nil
}

// Active returns the screen on top of the stack.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nav, ok := msg.(NavigateMsg); ok {
		return r.Apply(nav)
	}
	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
