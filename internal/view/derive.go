package view

import (
	"slices"

	"github.com/osintex/cli/internal/catalog"
	"github.com/samber/lo"
)

// FavoriteSet is the read side of the favorites store.
type FavoriteSet interface {
	Has(id catalog.ItemID) bool
	Count() int
}

// Kind tells a renderer which layout a Result uses.
type Kind string

const (
	KindSections Kind = "sections"
	KindGrid     Kind = "grid"
	KindDetail   Kind = "detail"
)

// Section is a category heading with the items shown under it.
type Section struct {
	CategoryID string         `json:"categoryId"`
	Name       string         `json:"name"`
	Items      []catalog.Item `json:"items"`
}

// Card is one tile of the category grid. ItemCount ignores the search query.
type Card struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ItemCount   int    `json:"itemCount"`
}

// Detail is a single category drilled into from the grid.
type Detail struct {
	CategoryID  string         `json:"categoryId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Items       []catalog.Item `json:"items"`
}

// Result is the derived view a renderer draws. Count is always the number of
// entries in the layout the renderer draws, never computed separately.
type Result struct {
	Tab      Tab       `json:"tab"`
	Kind     Kind      `json:"kind"`
	Query    string    `json:"query,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Cards    []Card    `json:"cards,omitempty"`
	Detail   *Detail   `json:"detail,omitempty"`
	// Stale is set when the selected category no longer exists; nothing is drawn.
	Stale bool `json:"stale,omitempty"`
	// NoFavorites is set on the Favorites tab when nothing has been starred yet.
	NoFavorites bool `json:"noFavorites,omitempty"`
	Count       int  `json:"count"`
}

// Empty reports whether nothing is drawn.
func (r Result) Empty() bool {
	return r.Count == 0
}

// EmptyMessage returns the headline and hint shown in place of an empty result.
func (r Result) EmptyMessage() (string, string) {
	switch {
	case r.Stale:
		return "", ""
	case r.NoFavorites:
		return "No favorites yet", "Star an entry to add it to your favorites"
	case r.Kind == KindGrid:
		return "No categories", "The catalog is empty"
	default:
		return "No results found", "Try a different search term"
	}
}

// Items flattens every drawn item in display order.
func (r Result) Items() []catalog.Item {
	if r.Detail != nil {
		return r.Detail.Items
	}
	return lo.FlatMap(r.Sections, func(s Section, _ int) []catalog.Item {
		return s.Items
	})
}

// Derive projects the catalog and favorites through the view state.
func Derive(state State, cat *catalog.Catalog, favs FavoriteSet) Result {
	r := Result{Tab: state.Tab(), Query: state.Query()}
	if cat == nil {
		cat = &catalog.Catalog{}
	}

	switch state.Tab() {
	case TabFavorites:
		r.Kind = KindSections
		r.Sections = favoriteSections(cat, favs, state.Query())
		r.NoFavorites = favs == nil || favs.Count() == 0
	case TabCategories:
		if id, ok := state.SelectedCategory(); ok {
			r.Kind = KindDetail
			r.Detail, r.Stale = detail(cat, id, state.Query())
		} else {
			r.Kind = KindGrid
			r.Cards = cards(cat)
		}
	default:
		r.Kind = KindSections
		r.Sections = allSections(cat, state.Query())
	}

	r.Count = countDrawn(r)
	return r
}

func allSections(cat *catalog.Catalog, query string) []Section {
	var sections []Section
	for _, c := range cat.Categories {
		items := catalog.Filter(c.Items, query)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, Section{CategoryID: c.ID, Name: c.Name, Items: items})
	}
	return sections
}

// favoriteSections groups starred items by category name, sorted by name.
// Categories sharing a name are merged under the first one's id.
func favoriteSections(cat *catalog.Catalog, favs FavoriteSet, query string) []Section {
	if favs == nil || favs.Count() == 0 {
		return nil
	}

	var starred []catalog.Located
	for _, c := range cat.Categories {
		for _, item := range c.Items {
			if favs.Has(item.ID()) {
				starred = append(starred, catalog.Located{CategoryID: c.ID, CategoryName: c.Name, Item: item})
			}
		}
	}

	groups := lo.GroupBy(starred, func(l catalog.Located) string {
		return l.CategoryName
	})
	names := lo.Keys(groups)
	slices.Sort(names)

	var sections []Section
	for _, name := range names {
		group := groups[name]
		items := catalog.Filter(lo.Map(group, func(l catalog.Located, _ int) catalog.Item {
			return l.Item
		}), query)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, Section{CategoryID: group[0].CategoryID, Name: name, Items: items})
	}
	return sections
}

func cards(cat *catalog.Catalog) []Card {
	return lo.Map(cat.Categories, func(c catalog.Category, _ int) Card {
		return Card{
			CategoryID:  c.ID,
			Name:        c.Name,
			Description: c.Description,
			ItemCount:   len(c.Items),
		}
	})
}

func detail(cat *catalog.Catalog, id, query string) (*Detail, bool) {
	c, ok := cat.Category(id)
	if !ok {
		return nil, true
	}
	return &Detail{
		CategoryID:  c.ID,
		Name:        c.Name,
		Description: c.Description,
		Items:       catalog.Filter(c.Items, query),
	}, false
}

func countDrawn(r Result) int {
	switch r.Kind {
	case KindGrid:
		return len(r.Cards)
	case KindDetail:
		if r.Detail == nil {
			return 0
		}
		return len(r.Detail.Items)
	default:
		return lo.SumBy(r.Sections, func(s Section) int {
			return len(s.Items)
		})
	}
}
