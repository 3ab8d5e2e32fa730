package cmd

import (
	"fmt"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/pkg/util"
	"github.com/samber/lo"
)

// resolveItem finds the single item called name. Items listed in several
// categories with the same url count once; otherwise an ambiguous name must
// be narrowed down with url.
func resolveItem(cat *catalog.Catalog, name, url string) (catalog.Item, error) {
	found := cat.FindByName(name)
	if url != "" {
		found = lo.Filter(found, func(l catalog.Located, _ int) bool {
			return l.Item.URL == url
		})
	}
	found = lo.UniqBy(found, func(l catalog.Located) catalog.ItemID {
		return l.Item.ID()
	})

	switch len(found) {
	case 0:
		if url != "" {
			return catalog.Item{}, fmt.Errorf("no tool named %q with url %s", name, url)
		}
		return catalog.Item{}, fmt.Errorf("no tool named %q", name)
	case 1:
		return found[0].Item, nil
	}

	urls := lo.Map(found, func(l catalog.Located, _ int) string {
		return l.Item.URL
	})
	return catalog.Item{}, fmt.Errorf("%q matches %d tools, pass --url with one of: %s",
		name, len(found), util.JoinOrDash(urls...))
}
