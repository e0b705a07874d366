package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	prevPage   key.Binding
	nextPage   key.Binding
	nextSeries key.Binding
	prevSeries key.Binding
	search     key.Binding
	clear      key.Binding
	back       key.Binding
	submit     key.Binding
	open       key.Binding
	copy       key.Binding
	fragment   key.Binding
	help       key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		nextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		nextSeries: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "next series")),
		prevSeries: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "prev series")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear search")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		open:       key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter/o", "open")),
		copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		fragment:   key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "go to fragment")),
		help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.nextSeries, k.prevPage, k.nextPage, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.prevPage, k.nextPage},
		{k.search, k.clear, k.nextSeries, k.prevSeries},
		{k.open, k.copy, k.fragment},
		{k.help, k.quit},
	}
}
