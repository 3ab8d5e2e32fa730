package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// Filter returns the items matching query, in their original order.
//
// An empty query returns items unchanged. Otherwise an item matches when the
// lowercased query is a substring of its lowercased name, description or url.
func Filter(items []Item, query string) []Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	return lo.Filter(items, func(item Item, _ int) bool {
		return Matches(item, q)
	})
}

// Matches reports whether item matches an already lowercased query.
func Matches(item Item, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(item.Name), lowerQuery) {
		return true
	}
	if item.Description != "" && strings.Contains(strings.ToLower(item.Description), lowerQuery) {
		return true
	}
	return strings.Contains(strings.ToLower(item.URL), lowerQuery)
}
