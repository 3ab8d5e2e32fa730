package cmd

import (
	"testing"

	"github.com/osintex/cli/internal/favorites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowsePrepare(t *testing.T) {
	ctrl := newTestController(t, favorites.NewMemoryKV(), nil)
	b := BrowseCmd{ctrl: ctrl}

	require.NoError(t, b.Prepare(BrowseInput{Tab: "categories", Query: "Shodan"}))
	assert.Equal(t, "shodan", ctrl.State().Query())
	assert.Equal(t, "categories", ctrl.State().Tab().String())

	err := b.Prepare(BrowseInput{Tab: "recent"})
	require.Error(t, err)
}
