// Package catalog holds the static, categorized list of links browsed by osintex
// and the filtering applied to it.
package catalog

import (
	"errors"

	"github.com/samber/lo"
)

// ItemIDSeparator joins an item's name and url into its ItemID.
const ItemIDSeparator = "::"

// ErrMalformed is returned when a catalog document does not have the expected shape.
var ErrMalformed = errors.New("malformed catalog")

// ItemID identifies an item for favorites. Items sharing a name and url share an ItemID.
type ItemID string

// Item is a single link in the catalog.
type Item struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ID returns the item's identity, derived from its name and url.
func (i Item) ID() ItemID {
	return ItemID(i.Name + ItemIDSeparator + i.URL)
}

// Category groups related items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Items       []Item `json:"items"`
}

// Catalog is the full set of categories, loaded once at startup.
type Catalog struct {
	Version     string     `json:"version,omitempty"`
	LastUpdated string     `json:"lastUpdated,omitempty"`
	Categories  []Category `json:"categories"`
}

// Category resolves a category by id.
func (c *Catalog) Category(id string) (*Category, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// TotalItems is the number of items across all categories.
func (c *Catalog) TotalItems() int {
	if c == nil {
		return 0
	}
	return lo.SumBy(c.Categories, func(cat Category) int {
		return len(cat.Items)
	})
}

// FindByName returns every item whose name matches exactly, paired with the
// category it belongs to, in catalog order.
func (c *Catalog) FindByName(name string) []Located {
	if c == nil {
		return nil
	}
	var out []Located
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			if item.Name == name {
				out = append(out, Located{CategoryID: cat.ID, CategoryName: cat.Name, Item: item})
			}
		}
	}
	return out
}

// Located is an item together with its owning category.
type Located struct {
	CategoryID   string
	CategoryName string
	Item         Item
}
