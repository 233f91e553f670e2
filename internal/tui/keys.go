package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the prompt and the editor.
type KeyMap struct {
	Submit   key.Binding
	Complete key.Binding
	Prev     key.Binding
	Next     key.Binding
	Clear    key.Binding
	Quit     key.Binding
	Save     key.Binding
	Close    key.Binding
}

// DefaultKeyMap returns bash-like bindings with nano's save and exit keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous command"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next command"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+d", "quit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "ctrl+o"),
			key.WithHelp("^O", "write out"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+x", "esc"),
			key.WithHelp("^X", "exit"),
		),
	}
}

// EditorHelpText is the footer shown under the editor.
func (k KeyMap) EditorHelpText() string {
	return "^O write out • ^X exit"
}
