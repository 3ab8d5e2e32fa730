package cmd

import (
	"context"

	"github.com/osintex/cli/internal/popup"
	"github.com/osintex/cli/internal/view"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// FavoritesCmd manages favorites from the command line.
type FavoritesCmd struct {
	ctrl *popup.Controller
}

// FavoritesListInput holds input for listing favorites.
type FavoritesListInput struct {
	Query  string
	Output string
}

// List prints the Favorites tab.
func (f FavoritesCmd) List(ctx context.Context, in FavoritesListInput) error {
	l := ListCmd{ctrl: f.ctrl}
	return l.List(ctx, ListInput{Tab: view.TabFavorites.String(), Query: in.Query, Output: in.Output})
}

// FavoriteInput names the item to change.
type FavoriteInput struct {
	Name string
	URL  string
}

// Add stars an item. Adding an existing favorite is not an error.
func (f FavoritesCmd) Add(ctx context.Context, in FavoriteInput) error {
	return f.set(ctx, in, true)
}

// Remove unstars an item. Removing a missing favorite is not an error.
func (f FavoritesCmd) Remove(ctx context.Context, in FavoriteInput) error {
	return f.set(ctx, in, false)
}

// Toggle flips an item's favorite status.
func (f FavoritesCmd) Toggle(ctx context.Context, in FavoriteInput) error {
	item, err := resolveItem(f.ctrl.Catalog(), in.Name, in.URL)
	if err != nil {
		return err
	}
	now, err := f.ctrl.ToggleFavorite(item)
	if err != nil {
		return err
	}
	if now {
		pterm.Success.Printf("Added %s to favorites\n", item.Name)
	} else {
		pterm.Success.Printf("Removed %s from favorites\n", item.Name)
	}
	return nil
}

func (f FavoritesCmd) set(ctx context.Context, in FavoriteInput, want bool) error {
	item, err := resolveItem(f.ctrl.Catalog(), in.Name, in.URL)
	if err != nil {
		return err
	}
	if f.ctrl.IsFavorite(item) == want {
		if want {
			pterm.Info.Printf("%s is already a favorite\n", item.Name)
		} else {
			pterm.Info.Printf("%s is not a favorite\n", item.Name)
		}
		return nil
	}
	return f.Toggle(ctx, FavoriteInput{Name: item.Name, URL: item.URL})
}

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite tools",
	Long:    "List, add, remove or toggle favorite tools by name. Use --url when several tools share a name.",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite tools grouped by category",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a tool to favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesChange(FavoritesCmd.Add),
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a tool from favorites",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavoritesChange(FavoritesCmd.Remove),
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <name>",
	Short: "Toggle a tool's favorite status",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesChange(FavoritesCmd.Toggle),
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)

	favoritesListCmd.Flags().StringP("query", "q", "", "search query")
	favoritesListCmd.Flags().StringP("output", "o", "", "output format: json")
	for _, c := range []*cobra.Command{favoritesAddCmd, favoritesRemoveCmd, favoritesToggleCmd} {
		c.Flags().String("url", "", "url of the tool, when several share the name")
	}
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	output, _ := cmd.Flags().GetString("output")

	ctrl, cleanup, err := openController(cmd, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	f := FavoritesCmd{ctrl: ctrl}
	return f.List(cmd.Context(), FavoritesListInput{Query: query, Output: output})
}

func runFavoritesChange(op func(FavoritesCmd, context.Context, FavoriteInput) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")

		ctrl, cleanup, err := openController(cmd, nil)
		if err != nil {
			return err
		}
		// Waits for the favorite to be written
		defer cleanup()

		return op(FavoritesCmd{ctrl: ctrl}, cmd.Context(), FavoriteInput{Name: args[0], URL: url})
	}
}
