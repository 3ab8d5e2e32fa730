// Package popup wires the catalog, favorites and view state into the single
// controller a session interacts with.
package popup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/internal/view"
	"golang.org/x/sync/errgroup"
)

// ErrTerminal is returned by every operation once initialization has failed.
var ErrTerminal = errors.New("popup failed to initialize")

// Controller owns all session state. It is driven from one goroutine.
type Controller struct {
	catalog   *catalog.Catalog
	favorites *favorites.Store
	state     view.State
	opener    Opener
	logger    *slog.Logger
	err       error
}

// Config holds the collaborators of a Controller.
type Config struct {
	Source    catalog.Source
	Favorites *favorites.Store
	Opener    Opener
	Logger    *slog.Logger
}

// Initialize loads the catalog and the favorites concurrently. A catalog
// failure leaves the controller in its terminal error state; favorites
// failures are absorbed by the store.
//
// The returned controller is never nil. The error is the same one Err reports.
func Initialize(ctx context.Context, cfg Config) (*Controller, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Opener == nil {
		cfg.Opener = BrowserOpener{}
	}
	if cfg.Favorites == nil {
		cfg.Favorites = favorites.New(favorites.NewMemoryKV(), favorites.Options{Logger: cfg.Logger})
	}

	c := &Controller{
		favorites: cfg.Favorites,
		state:     view.NewState(),
		opener:    cfg.Opener,
		logger:    cfg.Logger,
	}

	if cfg.Source == nil {
		c.err = fmt.Errorf("%w: no catalog source", ErrTerminal)
		return c, c.err
	}

	g, gctx := errgroup.WithContext(ctx)
	var loaded *catalog.Catalog
	g.Go(func() error {
		cat, err := cfg.Source.Load(gctx)
		if err != nil {
			return err
		}
		loaded = cat
		return nil
	})
	g.Go(func() error {
		c.favorites.Load(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		c.logger.Error("failed to load catalog", slog.Any("error", err))
		c.err = fmt.Errorf("%w: %w", ErrTerminal, err)
		return c, c.err
	}

	c.catalog = loaded
	c.logger.Debug("popup initialized",
		slog.Int("categories", len(loaded.Categories)),
		slog.Int("items", loaded.TotalItems()),
		slog.Int("favorites", c.favorites.Count()))
	return c, nil
}

// Err returns the initialization failure, if any.
func (c *Controller) Err() error {
	return c.err
}

func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// State returns a copy of the current navigation state.
func (c *Controller) State() view.State {
	return c.state
}

// View derives what should be drawn right now.
func (c *Controller) View() view.Result {
	return view.Derive(c.state, c.catalog, c.favorites)
}

func (c *Controller) TotalCount() int {
	return c.catalog.TotalItems()
}

func (c *Controller) FavoriteCount() int {
	return c.favorites.Count()
}

func (c *Controller) IsFavorite(item catalog.Item) bool {
	return c.favorites.Has(item.ID())
}

func (c *Controller) SwitchTab(tab view.Tab) error {
	if c.err != nil {
		return c.err
	}
	c.state.SwitchTab(tab)
	return nil
}

func (c *Controller) SelectCategory(id string) error {
	if c.err != nil {
		return c.err
	}
	return c.state.SelectCategory(id)
}

func (c *Controller) BackToCategories() error {
	if c.err != nil {
		return c.err
	}
	return c.state.BackToCategories()
}

func (c *Controller) SetQuery(q string) error {
	if c.err != nil {
		return c.err
	}
	c.state.SetQuery(q)
	return nil
}

func (c *Controller) ClearQuery() error {
	if c.err != nil {
		return c.err
	}
	c.state.ClearQuery()
	return nil
}

// ToggleFavorite flips the item's favorite status and reports the new status.
// The change is visible immediately; persisting happens in the background.
func (c *Controller) ToggleFavorite(item catalog.Item) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.favorites.Toggle(item.ID()), nil
}

// Open hands the item's url to the opener.
func (c *Controller) Open(item catalog.Item) error {
	if c.err != nil {
		return c.err
	}
	if err := c.opener.Open(item.URL); err != nil {
		c.logger.Warn("failed to open url", slog.String("url", item.URL), slog.Any("error", err))
		return fmt.Errorf("failed to open %s: %w", item.URL, err)
	}
	c.logger.Debug("opened url", slog.String("url", item.URL))
	return nil
}

// Close waits for outstanding favorite writes.
func (c *Controller) Close() {
	c.favorites.Wait()
}
