package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next  key.Binding
	Retry key.Binding
	Quit  key.Binding
	Yes   key.Binding
	No    key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("enter", "n"),
		key.WithHelp("Enter", "next"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("R", "retry"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "quit"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("Y", "end game"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("N", "keep playing"),
	),
}
