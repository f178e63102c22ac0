package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the board TUI.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Drag   key.Binding // Pick up the selected card.

	// Dialogs.
	Submit  key.Binding
	Cancel  key.Binding
	Blur    key.Binding // Leaves the edit field, committing it.
	Confirm key.Binding
	Deny    key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: vim-style movement
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next column"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add task"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Clear: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear all"),
	),
	Drag: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "drag"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Blur: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "done"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("y", "yes"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Drag, k.Edit, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Edit, k.Delete, k.Clear},
		{k.Drag, k.Help, k.Quit},
	}
}

// dialogKeys is the help shown while a text field has focus.
type dialogKeys struct {
	bindings []key.Binding
}

func (d dialogKeys) ShortHelp() []key.Binding  { return d.bindings }
func (d dialogKeys) FullHelp() [][]key.Binding { return [][]key.Binding{d.bindings} }
