// Package view models what the popup shows: the tab/category/query state machine
// and the derived, filtered projection of the catalog that renderers draw.
package view

import (
	"errors"
	"fmt"
	"strings"
)

// Tab is one of the top-level views.
type Tab int

const (
	TabAll Tab = iota
	TabFavorites
	TabCategories
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabAll, TabFavorites, TabCategories}

func (t Tab) String() string {
	switch t {
	case TabAll:
		return "all"
	case TabFavorites:
		return "favorites"
	case TabCategories:
		return "categories"
	default:
		return fmt.Sprintf("tab(%d)", int(t))
	}
}

// Title is the label shown on the tab button.
func (t Tab) Title() string {
	switch t {
	case TabAll:
		return "All"
	case TabFavorites:
		return "Favorites"
	case TabCategories:
		return "Categories"
	default:
		return t.String()
	}
}

func (t Tab) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tab) UnmarshalText(text []byte) error {
	parsed, err := ParseTab(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTab parses the name printed by Tab.String, case-insensitively.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TabAll, nil
	case "favorites", "favourites", "fav":
		return TabFavorites, nil
	case "categories", "category":
		return TabCategories, nil
	}
	return TabAll, fmt.Errorf("unknown tab %q: use all, favorites or categories", s)
}

// ErrInvalidTransition is returned when a navigation action is not allowed in
// the current state.
var ErrInvalidTransition = errors.New("invalid view transition")

// State is the non-persisted navigation state of a popup session.
//
// The selected category is deliberately kept when leaving the Categories tab,
// so coming back restores the detail view.
type State struct {
	tab      Tab
	selected string
	query    string
}

// NewState returns the startup state: All tab, no category, empty query.
func NewState() State {
	return State{tab: TabAll}
}

func (s State) Tab() Tab { return s.tab }

// SelectedCategory returns the selected category id, if any.
func (s State) SelectedCategory() (string, bool) {
	return s.selected, s.selected != ""
}

// Query is the lowercased search query.
func (s State) Query() string { return s.query }

// InDetail reports whether the Categories tab shows a single category.
func (s State) InDetail() bool {
	return s.tab == TabCategories && s.selected != ""
}

func (s *State) SwitchTab(tab Tab) {
	s.tab = tab
}

func (s *State) SelectCategory(id string) error {
	if s.tab != TabCategories {
		return fmt.Errorf("%w: select category on %s tab", ErrInvalidTransition, s.tab)
	}
	if id == "" {
		return fmt.Errorf("%w: empty category id", ErrInvalidTransition)
	}
	s.selected = id
	return nil
}

// BackToCategories clears the selection and lands on the category grid. It is
// valid whenever a category is selected, even from another tab.
func (s *State) BackToCategories() error {
	if s.selected == "" {
		return fmt.Errorf("%w: not viewing a category", ErrInvalidTransition)
	}
	s.selected = ""
	s.tab = TabCategories
	return nil
}

func (s *State) SetQuery(q string) {
	s.query = strings.ToLower(q)
}

func (s *State) ClearQuery() {
	s.query = ""
}
