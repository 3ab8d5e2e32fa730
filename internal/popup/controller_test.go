package popup

import (
	"context"
	"errors"
	"testing"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/internal/testutil"
	"github.com/osintex/cli/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeSource struct {
	LoadFunc func(ctx context.Context) (*catalog.Catalog, error)
}

func (f *FakeSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	if f.LoadFunc != nil {
		return f.LoadFunc(ctx)
	}
	return &catalog.Catalog{Categories: []catalog.Category{}}, nil
}

type FakeKV struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, value []byte) error
}

func (f *FakeKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, key)
	}
	return nil, false, nil
}

func (f *FakeKV) Set(ctx context.Context, key string, value []byte) error {
	if f.SetFunc != nil {
		return f.SetFunc(ctx, key, value)
	}
	return nil
}

var (
	google   = catalog.Item{Name: "Google", URL: "https://google.com"}
	bing     = catalog.Item{Name: "Bing", URL: "https://bing.com"}
	mastodon = catalog.Item{Name: "Mastodon", URL: "https://joinmastodon.org"}
)

func staticSource() *FakeSource {
	return &FakeSource{LoadFunc: func(ctx context.Context) (*catalog.Catalog, error) {
		return &catalog.Catalog{Categories: []catalog.Category{
			{ID: "search", Name: "Search", Items: []catalog.Item{google, bing}},
			{ID: "social", Name: "Social", Items: []catalog.Item{mastodon}},
		}}, nil
	}}
}

func newController(t *testing.T, kv favorites.KV, opener Opener) *Controller {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	store := favorites.New(kv, favorites.Options{Logger: logger})
	c, err := Initialize(context.Background(), Config{
		Source:    staticSource(),
		Favorites: store,
		Opener:    opener,
		Logger:    logger,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestInitialize_AllTabScenario(t *testing.T) {
	c := newController(t, favorites.NewMemoryKV(), nil)

	assert.NoError(t, c.Err())
	assert.Equal(t, 3, c.TotalCount())

	r := c.View()
	assert.Equal(t, view.TabAll, r.Tab)
	assert.Len(t, r.Sections, 2)
	assert.Equal(t, 3, r.Count)
}

func TestInitialize_LoadsSavedFavorites(t *testing.T) {
	kv := favorites.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), favorites.DefaultKey, []byte(`["Bing::https://bing.com"]`)))

	c := newController(t, kv, nil)
	assert.Equal(t, 1, c.FavoriteCount())
	assert.True(t, c.IsFavorite(bing))
}

func TestInitialize_FavoritesFailureIsNotFatal(t *testing.T) {
	kv := &FakeKV{GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
		return nil, false, errors.New("sync storage disabled")
	}}
	c := newController(t, kv, nil)

	assert.NoError(t, c.Err())
	assert.Equal(t, 0, c.FavoriteCount())
	assert.Equal(t, 3, c.View().Count)
}

func TestInitialize_CatalogFailureIsTerminal(t *testing.T) {
	src := &FakeSource{LoadFunc: func(ctx context.Context) (*catalog.Catalog, error) {
		return nil, catalog.ErrMalformed
	}}
	c, err := Initialize(context.Background(), Config{Source: src, Logger: testutil.NewTestLogger(t)})

	require.Error(t, err)
	require.NotNil(t, c)
	assert.ErrorIs(t, err, ErrTerminal)
	assert.ErrorIs(t, err, catalog.ErrMalformed)
	assert.Equal(t, err, c.Err())

	assert.ErrorIs(t, c.SwitchTab(view.TabFavorites), ErrTerminal)
	assert.ErrorIs(t, c.SelectCategory("search"), ErrTerminal)
	assert.ErrorIs(t, c.BackToCategories(), ErrTerminal)
	assert.ErrorIs(t, c.SetQuery("x"), ErrTerminal)
	assert.ErrorIs(t, c.ClearQuery(), ErrTerminal)
	_, err = c.ToggleFavorite(google)
	assert.ErrorIs(t, err, ErrTerminal)
	assert.ErrorIs(t, c.Open(google), ErrTerminal)

	assert.Equal(t, view.TabAll, c.State().Tab(), "no transition happens after a fatal error")
	assert.Equal(t, 0, c.View().Count)
}

func TestInitialize_NoSource(t *testing.T) {
	c, err := Initialize(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrTerminal)
	assert.Error(t, c.Err())
}

func TestController_FavoriteScenario(t *testing.T) {
	kv := favorites.NewMemoryKV()
	c := newController(t, kv, nil)

	now, err := c.ToggleFavorite(mastodon)
	require.NoError(t, err)
	assert.True(t, now)
	require.NoError(t, c.SwitchTab(view.TabFavorites))

	r := c.View()
	require.Len(t, r.Sections, 1)
	assert.Equal(t, []catalog.Item{mastodon}, r.Sections[0].Items)
	assert.Equal(t, 1, c.FavoriteCount())
	assert.Equal(t, 1, r.Count)

	c.Close()
	raw, found, err := kv.Get(context.Background(), favorites.DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `["Mastodon::https://joinmastodon.org"]`, string(raw))

	now, err = c.ToggleFavorite(mastodon)
	require.NoError(t, err)
	assert.False(t, now)
	assert.True(t, c.View().NoFavorites)
}

func TestController_CategoryDetailScenario(t *testing.T) {
	c := newController(t, favorites.NewMemoryKV(), nil)

	assert.ErrorIs(t, c.SelectCategory("search"), view.ErrInvalidTransition)

	require.NoError(t, c.SwitchTab(view.TabCategories))
	require.NoError(t, c.SelectCategory("search"))
	require.NoError(t, c.SetQuery("xyz"))

	r := c.View()
	assert.Equal(t, view.KindDetail, r.Kind)
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.Count)

	require.NoError(t, c.BackToCategories())
	r = c.View()
	assert.Equal(t, view.KindGrid, r.Kind)
	assert.Len(t, r.Cards, 2)

	require.NoError(t, c.ClearQuery())
	assert.Equal(t, "", c.State().Query())
}

func TestController_Open(t *testing.T) {
	var opened []string
	c := newController(t, favorites.NewMemoryKV(), OpenerFunc(func(url string) error {
		opened = append(opened, url)
		return nil
	}))

	require.NoError(t, c.Open(google))
	assert.Equal(t, []string{"https://google.com"}, opened)
}

func TestController_OpenFailure(t *testing.T) {
	c := newController(t, favorites.NewMemoryKV(), OpenerFunc(func(url string) error {
		return errors.New("no browser")
	}))

	err := c.Open(bing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://bing.com")
	assert.Contains(t, err.Error(), "no browser")
}
