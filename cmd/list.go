package cmd

import (
	"context"
	"fmt"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/popup"
	"github.com/osintex/cli/internal/view"
	"github.com/osintex/cli/pkg/table"
	"github.com/osintex/cli/pkg/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ListCmd prints derived views of the catalog.
type ListCmd struct {
	ctrl *popup.Controller
}

// ListInput selects the view to print.
type ListInput struct {
	Tab      string
	Category string
	Query    string
	Output   string
}

// List prints the view selected by the input, followed by the result count.
func (l ListCmd) List(ctx context.Context, in ListInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}
	if err := l.ctrl.Err(); err != nil {
		return err
	}

	tab, err := view.ParseTab(in.Tab)
	if err != nil {
		return err
	}
	if in.Category != "" {
		tab = view.TabCategories
	}
	if err := l.ctrl.SwitchTab(tab); err != nil {
		return err
	}
	if in.Category != "" {
		if err := l.ctrl.SelectCategory(in.Category); err != nil {
			return err
		}
	}
	if err := l.ctrl.SetQuery(in.Query); err != nil {
		return err
	}

	r := l.ctrl.View()
	if r.Stale {
		return fmt.Errorf("unknown category %q", in.Category)
	}
	if in.Output == "json" {
		return util.PrintPrettyJSON(r)
	}

	printResult(l.ctrl, r)
	return nil
}

// printResult draws a derived view with pterm.
func printResult(ctrl *popup.Controller, r view.Result) {
	if r.Empty() {
		headline, hint := r.EmptyMessage()
		if headline != "" {
			pterm.Info.Printf("%s. %s\n", headline, hint)
		}
		return
	}

	switch r.Kind {
	case view.KindGrid:
		printCards(r.Cards)
	case view.KindDetail:
		pterm.DefaultSection.Println(r.Detail.Name)
		if r.Detail.Description != "" {
			pterm.Println(r.Detail.Description)
		}
		printItems(ctrl, r.Detail.Items)
	default:
		for _, s := range r.Sections {
			pterm.DefaultSection.Println(s.Name)
			printItems(ctrl, s.Items)
		}
	}
	pterm.Println()
	pterm.Println(util.Plural(r.Count, "result", "results"))
}

func printItems(ctrl *popup.Controller, items []catalog.Item) {
	rows := pterm.TableData{{"", "Name", "Description", "URL"}}
	for _, item := range items {
		star := " "
		if ctrl.IsFavorite(item) {
			star = "★"
		}
		rows = append(rows, []string{star, item.Name, util.OrDash(util.Truncate(item.Description, 60)), item.URL})
	}
	table.PrintTableNoPad(rows, true)
}

func printCards(cards []view.Card) {
	rows := pterm.TableData{{"ID", "Name", "Tools", "Description"}}
	for _, c := range cards {
		rows = append(rows, []string{c.CategoryID, c.Name, fmt.Sprintf("%d", c.ItemCount), util.OrDash(util.Truncate(c.Description, 60))})
	}
	table.PrintTableNoPad(rows, true)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the catalog as the browser would show it",
	Long: `Print the catalog as the browser would show it.

With --category the items of that category are printed; --query filters by
name, description or url, case-insensitively.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("tab", view.TabAll.String(), "tab to print: all, favorites or categories")
	listCmd.Flags().String("category", "", "category id to print")
	listCmd.Flags().StringP("query", "q", "", "search query")
	listCmd.Flags().StringP("output", "o", "", "output format: json")
}

func runList(cmd *cobra.Command, args []string) error {
	tab, _ := cmd.Flags().GetString("tab")
	category, _ := cmd.Flags().GetString("category")
	query, _ := cmd.Flags().GetString("query")
	output, _ := cmd.Flags().GetString("output")

	ctrl, cleanup, err := openController(cmd, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	l := ListCmd{ctrl: ctrl}
	return l.List(cmd.Context(), ListInput{
		Tab:      tab,
		Category: category,
		Query:    query,
		Output:   output,
	})
}
