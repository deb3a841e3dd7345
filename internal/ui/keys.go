package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of both focus areas
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Toggle    key.Binding
	Open      key.Binding
	Search    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Submit  key.Binding
	Results key.Binding
	Clear   key.Binding

	// searching selects the short help of the search box
	searching bool
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("PgUp", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("PgDn", "page down")),
		Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "expand")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in pager")),
		Search:    key.NewBinding(key.WithKeys("/", "esc"), key.WithHelp("/", "edit search")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search now")),
		Results: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "results")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	if k.searching {
		return []key.Binding{k.Submit, k.Results, k.Clear, k.ForceQuit}
	}
	return []key.Binding{k.Toggle, k.Open, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Toggle, k.Open, k.Search},
		{k.Submit, k.Results, k.Clear},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
