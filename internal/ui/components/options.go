package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/hijaydeep/Trivia-Game/internal/game"
	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// OptionChosenMsg is emitted when the player picks an option.
type OptionChosenMsg struct {
	Index int
}

// OptionKeyMap holds the bindings used by OptionList.
type OptionKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
}

// DefaultOptionKeys moves with arrows or j/k and chooses with Enter.
var DefaultOptionKeys = OptionKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("Enter", "choose"),
	),
}

// OptionList renders the answer options of one question and turns key
// presses into OptionChosenMsg. It never decides correctness itself: the
// caller passes the per-option state when rendering.
type OptionList struct {
	Options []string
	Cursor  int
	Locked  bool
	Keys    OptionKeyMap
}

// NewOptionList creates a list with the cursor on the first option.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options: options,
		Keys:    DefaultOptionKeys,
	}
}

// Update moves the cursor or emits a choice. Locked lists ignore input.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Locked || len(o.Options) == 0 {
		return o, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return o, nil
	}

	switch {
	case key.Matches(kmsg, o.Keys.Up):
		if o.Cursor > 0 {
			o.Cursor--
		}
		return o, nil
	case key.Matches(kmsg, o.Keys.Down):
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
		return o, nil
	case key.Matches(kmsg, o.Keys.Choose):
		return o, choose(o.Cursor)
	}

	if i, ok := shortcutIndex(kmsg.String()); ok && i < len(o.Options) {
		o.Cursor = i
		return o, choose(i)
	}
	return o, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return OptionChosenMsg{Index: i} }
}

// shortcutIndex maps 1-4 and a-d to an option index.
func shortcutIndex(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	}
	return 0, false
}

// Label returns the letter shown in front of option i.
func Label(i int) string {
	if i < 0 || i >= len(optionLabels) {
		return "?"
	}
	return optionLabels[i]
}

// View renders the options stacked at width. state reports how each option
// should look once the question is locked.
func (o OptionList) View(width int, state func(option string) game.OptionState) string {
	w := max(width-4, 10)

	rows := make([]string, 0, len(o.Options))
	for i, opt := range o.Options {
		st := game.OptionNeutral
		if state != nil {
			st = state(opt)
		}

		text := fmt.Sprintf("%s)  %s", Label(i), opt)
		style := theme.OptionNeutral

		switch {
		case o.Locked && st == game.OptionCorrect:
			style = theme.OptionCorrect
			text += "  ✓"
		case o.Locked && st == game.OptionWrong:
			style = theme.OptionWrong
			text += "  ✗"
		case o.Locked:
			style = theme.OptionDimmed
		case i == o.Cursor:
			style = theme.OptionCursor
			text = "▸ " + text
		}

		rows = append(rows, style.Width(w).Render(text))
	}
	return strings.Join(rows, "\n")
}
