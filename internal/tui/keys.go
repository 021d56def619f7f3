package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab       key.Binding
	Eco       key.Binding
	Challenge key.Binding
	Facts     key.Binding
	Refresh   key.Binding
	Delete    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Eco, k.Challenge, k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Eco, k.Challenge, k.Facts},
		{k.Tab, k.Refresh, k.Delete},
		{k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "today/calendar"),
		),
		Eco: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "toggle eco action"),
		),
		Challenge: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle challenge"),
		),
		Facts: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "next facts"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete today"),
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
