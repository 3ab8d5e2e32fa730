package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
)

//go:embed data/default.json
var defaultCatalog []byte

// EmbeddedSource loads the catalog shipped inside the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cat, err := Decode(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return cat, nil
}
