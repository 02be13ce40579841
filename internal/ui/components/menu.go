package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     OptionKeyMap
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1, Keys: DefaultOptionKeys}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move selects the nearest enabled item in direction dir (+1 or -1). The
// selection stays put when there is none.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update moves the selection and runs the chosen item's Action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		m.move(-1)
	case key.Matches(kmsg, m.Keys.Down):
		m.move(1)
	case key.Matches(kmsg, m.Keys.Choose):
		if m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; !item.Disabled && item.Action != nil {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// View stacks the items as fixed-width buttons centred in cw.
func (m Menu) View(cw int) string {
	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			buttons[i] = box(lipgloss.RoundedBorder(), theme.Border).
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Padding(0, 1).
				Render(item.Label)
		default:
			buttons[i] = ArcadeButton(item.Label, i == m.Selected, buttonWidth)
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(buttons, "\n"))
}
