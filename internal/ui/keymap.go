package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Stories   key.Binding
	Games     key.Binding
	Create    key.Binding
	AddChar   key.Binding
	DropChar  key.Binding
	Submit    key.Binding
	Theme     key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns the global bindings; screens prepend their own hints.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev, k.Enter, k.Back},
		{k.Create, k.AddChar, k.DropChar, k.Submit},
		{k.Theme, k.Reload, k.Help, k.Quit},
	}
}

// Keys is the default key map.
var Keys = KeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Stories:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stories")),
	Games:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "games")),
	Create:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "create new")),
	AddChar:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add character")),
	DropChar:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "remove character")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "create")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// hintMap adapts a binding list to help.KeyMap.
type hintMap []key.Binding

func (h hintMap) ShortHelp() []key.Binding  { return h }
func (h hintMap) FullHelp() [][]key.Binding { return [][]key.Binding{h} }
