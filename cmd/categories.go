package cmd

import (
	"context"
	"fmt"

	"github.com/osintex/cli/internal/popup"
	"github.com/osintex/cli/internal/view"
	"github.com/osintex/cli/pkg/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// CategoriesCmd prints the category grid.
type CategoriesCmd struct {
	ctrl *popup.Controller
}

// CategoriesInput holds input for printing categories.
type CategoriesInput struct {
	Output string
}

// List prints one row per category with its unfiltered tool count.
func (c CategoriesCmd) List(ctx context.Context, in CategoriesInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}
	if err := c.ctrl.SwitchTab(view.TabCategories); err != nil {
		return err
	}

	r := c.ctrl.View()
	if in.Output == "json" {
		cards := r.Cards
		if cards == nil {
			cards = []view.Card{}
		}
		return util.PrintPrettyJSON(cards)
	}

	if r.Empty() {
		pterm.Info.Println("No categories found")
		return nil
	}
	printCards(r.Cards)
	pterm.Println()
	pterm.Printf("%s, %s\n",
		util.Plural(len(r.Cards), "category", "categories"),
		util.Plural(c.ctrl.TotalCount(), "tool", "tools"))
	return nil
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().StringP("output", "o", "", "output format: json")
}

func runCategories(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	ctrl, cleanup, err := openController(cmd, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	c := CategoriesCmd{ctrl: ctrl}
	return c.List(cmd.Context(), CategoriesInput{Output: output})
}
