package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "version": "1.0.0",
  "categories": [
    {"id": "search", "name": "Search", "items": [
      {"name": "Google", "url": "https://google.com"},
      {"name": "Bing", "url": "https://bing.com", "description": "Microsoft"}
    ]},
    {"id": "social", "name": "Social", "items": [{"name": "Mastodon", "url": "https://joinmastodon.org"}]}
  ]
}`

func TestDecode(t *testing.T) {
	cat, err := Decode(strings.NewReader(validDoc))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cat.Version)
	require.Len(t, cat.Categories, 2)
	assert.Equal(t, "Microsoft", cat.Categories[0].Items[1].Description)
	assert.Equal(t, 3, cat.TotalItems())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		errSubstr string
	}{
		{name: "not json", doc: `<html>`, errSubstr: "malformed"},
		{name: "missing categories", doc: `{"version": "1.0.0"}`, errSubstr: "missing categories"},
		{name: "categories not array", doc: `{"categories": {}}`, errSubstr: "malformed"},
		{name: "category without id", doc: `{"categories": [{"name": "x", "items": []}]}`, errSubstr: "has no id"},
		{name: "duplicate id", doc: `{"categories": [{"id": "a", "items": []}, {"id": "a", "items": []}]}`, errSubstr: "duplicate"},
		{name: "missing items", doc: `{"categories": [{"id": "a"}]}`, errSubstr: "no items array"},
		{name: "item without url", doc: `{"categories": [{"id": "a", "items": [{"name": "n"}]}]}`, errSubstr: "name and url"},
		{name: "bad version", doc: `{"version": "one", "categories": []}`, errSubstr: "invalid version"},
		{name: "unsupported version", doc: `{"version": "2.0.0", "categories": []}`, errSubstr: "unsupported catalog version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestDecode_EmptyCategoriesIsValid(t *testing.T) {
	cat, err := Decode(strings.NewReader(`{"categories": []}`))
	require.NoError(t, err)
	assert.Empty(t, cat.Categories)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))

	cat, err := NewSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Categories, 2)

	_, err = FileSource{Path: filepath.Join(dir, "missing.json")}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog")
}

func TestDirSource_MergesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "second.json"),
		[]byte(`{"lastUpdated": "2025-11-01", "categories": [{"id": "dns", "name": "DNS", "items": []}]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"),
		[]byte(`{"version": "1.2.0", "lastUpdated": "2025-10-30", "categories": [{"id": "code", "name": "Code", "items": []}]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	src := NewSource(dir)
	require.IsType(t, DirSource{}, src)

	cat, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Categories, 2)
	assert.Equal(t, "code", cat.Categories[0].ID)
	assert.Equal(t, "dns", cat.Categories[1].ID)
	assert.Equal(t, "1.2.0", cat.Version)
	assert.Equal(t, "2025-11-01", cat.LastUpdated)
}

func TestDirSource_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`{"categories": [{"id": "dns", "name": "DNS", "items": []}]}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), doc, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), doc, 0644))

	_, err := DirSource{Dir: dir}.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDirSource_Empty(t *testing.T) {
	_, err := DirSource{Dir: t.TempDir()}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .json files")
}

func TestEmbeddedSource(t *testing.T) {
	src := NewSource("")
	require.IsType(t, EmbeddedSource{}, src)

	cat, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Categories)
	assert.Greater(t, cat.TotalItems(), 0)
}

func TestSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EmbeddedSource{}.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
