package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains the dashboard key bindings
type KeyMap struct {
	Archive key.Binding
	Cancel  key.Binding
	Dismiss key.Binding
	Down    key.Binding
	Finish  key.Binding
	Help    key.Binding
	New     key.Binding
	Pause   key.Binding
	Quit    key.Binding
	Start   key.Binding
	Stop    key.Binding
	Up      key.Binding
}

// NewKeyMap creates the default key bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		Archive: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
		Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss banner")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	}
}

// ShortHelp returns the bindings for the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Start, k.Stop, k.Finish, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by column
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.New, k.Start, k.Stop, k.Pause},
		{k.Finish, k.Cancel, k.Archive, k.Dismiss},
		{k.Help, k.Quit},
	}
}
