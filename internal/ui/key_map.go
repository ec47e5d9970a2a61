package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next      key.Binding
	prev      key.Binding
	groups    key.Binding
	jump      key.Binding
	focusNext key.Binding
	focusPrev key.Binding
	toggle    key.Binding
	save      key.Binding
	back      key.Binding
	help      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		groups:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "groups")),
		jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump to group")),
		focusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next card")),
		focusPrev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev card")),
		toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		save:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watchlist")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.prev, k.groups, k.toggle, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.groups, k.jump},
		{k.focusNext, k.focusPrev, k.toggle, k.save},
		{k.back, k.help, k.quit},
	}
}
