package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the popup key bindings.
type KeyMap struct {
	Quit         key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	TabAll       key.Binding
	TabFavorites key.Binding
	TabCategory  key.Binding
	Search       key.Binding
	ClearSearch  key.Binding
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Open         key.Binding
	Favorite     key.Binding
	Back         key.Binding
	Cancel       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:      key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next tab")),
		PrevTab:      key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
		TabAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		TabFavorites: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "favorites")),
		TabCategory:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "categories")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch:  key.NewBinding(key.WithKeys("x", "ctrl+u"), key.WithHelp("x", "clear search")),
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Top:          key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Open:         key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open")),
		Favorite:     key.NewBinding(key.WithKeys("f", "s"), key.WithHelp("f", "favorite")),
		Back:         key.NewBinding(key.WithKeys("backspace", "h", "esc"), key.WithHelp("esc", "back")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

// shortHelp returns the bindings listed in the footer.
func (k KeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextTab, k.Open, k.Favorite, k.Back, k.Quit}
}
