package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the key bindings of the timer screen.
type keyMap struct {
	MinutesUp   key.Binding
	MinutesDown key.Binding
	SecondsUp   key.Binding
	SecondsDown key.Binding
	Action      key.Binding
	Reset       key.Binding
	Foghorn     key.Binding
	Rooster     key.Binding
	Submarine   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		MinutesUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "minutes +1"),
		),
		MinutesDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "minutes -1"),
		),
		SecondsUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "seconds +1"),
		),
		SecondsDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "seconds -1"),
		),
		Action: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/pause/resume/snooze"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Foghorn: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "foghorn"),
		),
		Rooster: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "rooster"),
		),
		Submarine: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "submarine"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Action, keys.Reset, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.MinutesUp, keys.MinutesDown, keys.SecondsUp, keys.SecondsDown},
		{keys.Action, keys.Reset},
		{keys.Foghorn, keys.Rooster, keys.Submarine},
		{keys.Help, keys.Quit},
	}
}
