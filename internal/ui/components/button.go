package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

// Button is a single action bound to one or more keys. Hidden buttons are
// neither drawn nor pressable.
type Button struct {
	Label   string
	Keys    key.Binding
	Visible bool
	OnPress func() tea.Cmd
}

// NewButton creates a visible button triggered by keys.
func NewButton(label string, keys key.Binding, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Keys:    keys,
		Visible: true,
		OnPress: onPress,
	}
}

// Update fires OnPress when one of the button's keys is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Visible || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, b.Keys) {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button, or nothing when hidden.
func (b Button) View() string {
	if !b.Visible {
		return ""
	}
	return theme.ButtonActive.Render("▸ " + b.Label)
}
