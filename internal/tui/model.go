// Package tui is the interactive terminal renderer of the popup.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/popup"
	"github.com/osintex/cli/internal/view"
)

// entry is one selectable line: an item or a category card.
type entry struct {
	item    catalog.Item
	card    view.Card
	isCard  bool
	section string
}

// openedMsg reports the outcome of handing a url to the browser.
type openedMsg struct {
	url string
	err error
}

// Model is the bubbletea model wrapping a popup.Controller.
type Model struct {
	ctrl   *popup.Controller
	keys   KeyMap
	styles Styles

	search    textinput.Model
	searching bool

	result  view.Result
	entries []entry
	cursor  int
	status  string

	width  int
	height int
}

// Params holds parameters for creating a Model.
type Params struct {
	Controller *popup.Controller
	Keys       *KeyMap // optional, uses default if nil
	Styles     *Styles // optional, uses default if nil
}

// New creates a Model showing the controller's current state.
func New(params Params) Model {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}
	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	search := textinput.New()
	search.Placeholder = "Search tools, descriptions or urls"
	search.Prompt = "/ "
	search.CharLimit = 200
	search.Width = 50

	m := Model{
		ctrl:   params.Controller,
		keys:   keys,
		styles: styles,
		search: search,
		width:  80,
		height: 24,
	}
	if m.ctrl.Err() == nil {
		m.search.SetValue(m.ctrl.State().Query())
	}
	m.refresh()
	return m
}

// Cursor returns the index of the selected entry.
func (m Model) Cursor() int { return m.cursor }

// Result returns the derived view currently drawn.
func (m Model) Result() view.Result { return m.result }

// Searching reports whether the search box has focus.
func (m Model) Searching() bool { return m.searching }

// Status returns the last status line message.
func (m Model) Status() string { return m.status }

// Selected returns the item under the cursor, if the cursor is on an item.
func (m Model) Selected() (catalog.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) || m.entries[m.cursor].isCard {
		return catalog.Item{}, false
	}
	return m.entries[m.cursor].item, true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not open %s", msg.url)
		} else {
			m.status = fmt.Sprintf("Opened %s", msg.url)
		}
		return m, nil

	case tea.KeyMsg:
		if m.ctrl.Err() != nil {
			if key.Matches(msg, m.keys.Quit) || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.apply(m.ctrl.ClearQuery())
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != prev {
		m.apply(m.ctrl.SetQuery(m.search.Value()))
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		m.clearSearch()

	case key.Matches(msg, m.keys.TabAll):
		m.switchTab(view.TabAll)
	case key.Matches(msg, m.keys.TabFavorites):
		m.switchTab(view.TabFavorites)
	case key.Matches(msg, m.keys.TabCategory):
		m.switchTab(view.TabCategories)
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(view.Tabs[(int(m.result.Tab)+1)%len(view.Tabs)])
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(view.Tabs[(int(m.result.Tab)+len(view.Tabs)-1)%len(view.Tabs)])

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}

	case key.Matches(msg, m.keys.Favorite):
		m.toggleFavorite()

	case key.Matches(msg, m.keys.Open):
		return m.activate()

	case key.Matches(msg, m.keys.Back):
		m.back(msg)
	}
	return m, nil
}

func (m *Model) switchTab(tab view.Tab) {
	if tab == m.result.Tab {
		return
	}
	m.apply(m.ctrl.SwitchTab(tab))
	m.cursor = 0
	m.status = ""
}

func (m *Model) clearSearch() {
	if m.ctrl.State().Query() == "" {
		return
	}
	m.search.SetValue("")
	m.apply(m.ctrl.ClearQuery())
	m.cursor = 0
}

// back leaves the category detail view, or clears the search elsewhere.
func (m *Model) back(msg tea.KeyMsg) {
	if m.ctrl.State().InDetail() {
		m.apply(m.ctrl.BackToCategories())
		m.cursor = 0
		return
	}
	if key.Matches(msg, m.keys.Cancel) {
		m.clearSearch()
	}
}

func (m *Model) toggleFavorite() {
	item, ok := m.Selected()
	if !ok {
		return
	}
	now, err := m.ctrl.ToggleFavorite(item)
	if err != nil {
		m.apply(err)
		return
	}
	if now {
		m.status = fmt.Sprintf("Added %s to favorites", item.Name)
	} else {
		m.status = fmt.Sprintf("Removed %s from favorites", item.Name)
	}
	m.refresh()
}

// activate opens the selected item or drills into the selected category card.
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return m, nil
	}
	e := m.entries[m.cursor]
	if e.isCard {
		m.apply(m.ctrl.SelectCategory(e.card.CategoryID))
		m.cursor = 0
		return m, nil
	}

	ctrl := m.ctrl
	item := e.item
	return m, func() tea.Msg {
		return openedMsg{url: item.URL, err: ctrl.Open(item)}
	}
}

// apply records a failed transition in the status line and redraws.
func (m *Model) apply(err error) {
	if err != nil && !errors.Is(err, view.ErrInvalidTransition) {
		m.status = err.Error()
	}
	m.refresh()
}

// refresh re-derives the view and rebuilds the selectable entries from it.
func (m *Model) refresh() {
	if m.ctrl.Err() != nil {
		return
	}
	m.result = m.ctrl.View()
	m.entries = nil

	switch m.result.Kind {
	case view.KindGrid:
		for _, c := range m.result.Cards {
			m.entries = append(m.entries, entry{card: c, isCard: true})
		}
	case view.KindDetail:
		if m.result.Detail != nil {
			for _, item := range m.result.Detail.Items {
				m.entries = append(m.entries, entry{item: item, section: m.result.Detail.Name})
			}
		}
	default:
		for _, s := range m.result.Sections {
			for _, item := range s.Items {
				m.entries = append(m.entries, entry{item: item, section: s.Name})
			}
		}
	}

	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
