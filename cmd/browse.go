package cmd

import (
	"github.com/osintex/cli/internal/popup"
	"github.com/osintex/cli/internal/tui"
	"github.com/osintex/cli/internal/view"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive catalog browser",
	Long: `Open the interactive catalog browser.

Keys: 1/2/3 switch tabs, / searches, j/k move, enter opens a tool or a
category, f toggles a favorite, esc goes back, q quits.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	addBrowseFlags(browseCmd)
}

func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().String("tab", view.TabAll.String(), "tab to start on: all, favorites or categories")
	cmd.Flags().String("query", "", "initial search query")
	cmd.Flags().Bool("inline", false, "render without switching to the alternate screen")
}

// BrowseInput holds the starting position of the browser.
type BrowseInput struct {
	Tab    string
	Query  string
	Inline bool
}

// BrowseCmd runs the interactive browser.
type BrowseCmd struct {
	ctrl *popup.Controller
}

// Prepare applies the starting tab and query. It does nothing when the
// controller failed to initialize; the browser shows that error instead.
func (b BrowseCmd) Prepare(in BrowseInput) error {
	if b.ctrl.Err() != nil {
		return nil
	}
	tab, err := view.ParseTab(in.Tab)
	if err != nil {
		return err
	}
	if err := b.ctrl.SwitchTab(tab); err != nil {
		return err
	}
	if in.Query != "" {
		return b.ctrl.SetQuery(in.Query)
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	tab, _ := cmd.Flags().GetString("tab")
	query, _ := cmd.Flags().GetString("query")
	inline, _ := cmd.Flags().GetBool("inline")

	ctrl, cleanup, err := openController(cmd, popup.BrowserOpener{Quiet: true})
	if err != nil {
		return err
	}
	defer cleanup()

	in := BrowseInput{Tab: tab, Query: query, Inline: inline}
	b := BrowseCmd{ctrl: ctrl}
	if err := b.Prepare(in); err != nil {
		return err
	}
	return tui.Run(cmd.Context(), ctrl, tui.Options{Inline: in.Inline})
}
