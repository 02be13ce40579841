package components

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

func TestButton(t *testing.T) {
	pressed := 0
	b := NewButton("Next", key.NewBinding(key.WithKeys("enter", "n")), func() tea.Cmd {
		pressed++
		return nil
	})

	b, _ = b.Update(keyPress('n'))
	b, _ = b.Update(specialKey(tea.KeyEnter))
	b, _ = b.Update(keyPress('x'))
	if pressed != 2 {
		t.Errorf("pressed = %d, want 2", pressed)
	}

	b.Visible = false
	b, _ = b.Update(keyPress('n'))
	if pressed != 2 {
		t.Error("hidden button should not fire")
	}
	if b.View() != "" {
		t.Error("hidden button should render nothing")
	}
}
