package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_AllTab(t *testing.T) {
	setupStdoutCapture(t)
	l := ListCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}

	err := l.List(context.Background(), ListInput{})
	require.NoError(t, err)

	out := outBuf.String()
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "Social")
	assert.Contains(t, out, "https://joinmastodon.org")
	assert.Contains(t, out, "6 results")
}

func TestList_Query(t *testing.T) {
	setupStdoutCapture(t)
	l := ListCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}

	err := l.List(context.Background(), ListInput{Query: "SHODAN"})
	require.NoError(t, err)

	out := outBuf.String()
	assert.Contains(t, out, "https://beta.shodan.io")
	assert.NotContains(t, out, "Mastodon")
	assert.Contains(t, out, "3 results")
}

func TestList_Category(t *testing.T) {
	setupStdoutCapture(t)
	l := ListCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}

	err := l.List(context.Background(), ListInput{Category: "search"})
	require.NoError(t, err)

	out := outBuf.String()
	assert.Contains(t, out, "engines")
	assert.Contains(t, out, "Google")
	assert.NotContains(t, out, "Mastodon")
	assert.Contains(t, out, "3 results")
}

func TestList_UnknownCategory(t *testing.T) {
	setupStdoutCapture(t)
	l := ListCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}

	err := l.List(context.Background(), ListInput{Category: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "nope"`)
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      ListInput
		wantErr string
	}{
		{name: "bad output", in: ListInput{Output: "yaml"}, wantErr: "unsupported --output"},
		{name: "bad tab", in: ListInput{Tab: "recent"}, wantErr: `unknown tab "recent"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupStdoutCapture(t)
			l := ListCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}
			err := l.List(context.Background(), tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestList_EmptyFavorites(t *testing.T) {
	setupStdoutCapture(t)
	l := ListCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}

	err := l.List(context.Background(), ListInput{Tab: "favorites"})
	require.NoError(t, err)
	assert.Contains(t, outBuf.String(), "No favorites yet")
}

func TestList_JSONOutput(t *testing.T) {
	setupStdoutCapture(t)
	read := captureStdout(t)
	l := ListCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}

	err := l.List(context.Background(), ListInput{Tab: "categories", Output: "json"})
	require.NoError(t, err)

	var got view.Result
	require.NoError(t, json.Unmarshal([]byte(read()), &got))
	assert.Equal(t, view.KindGrid, got.Kind)
	assert.Equal(t, 3, got.Count)
	require.Len(t, got.Cards, 3)
	assert.Equal(t, "iot", got.Cards[2].CategoryID)
	assert.Equal(t, 2, got.Cards[2].ItemCount)
}

func TestCategories(t *testing.T) {
	setupStdoutCapture(t)
	c := CategoriesCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), nil)}

	err := c.List(context.Background(), CategoriesInput{})
	require.NoError(t, err)

	out := outBuf.String()
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "IoT")
	assert.Contains(t, out, "3 categories, 6 tools")
}
