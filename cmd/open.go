package cmd

import (
	"context"

	"github.com/osintex/cli/internal/popup"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// OpenCmd opens catalog tools in the browser.
type OpenCmd struct {
	ctrl *popup.Controller
}

// OpenInput names the tool to open.
type OpenInput struct {
	Name string
	URL  string
}

// Open resolves the tool by name and hands its url to the browser.
func (o OpenCmd) Open(ctx context.Context, in OpenInput) error {
	item, err := resolveItem(o.ctrl.Catalog(), in.Name, in.URL)
	if err != nil {
		return err
	}
	if err := o.ctrl.Open(item); err != nil {
		return err
	}
	pterm.Success.Printf("Opened %s (%s)\n", item.Name, item.URL)
	return nil
}

var openCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Open a tool in the default browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	openCmd.Flags().String("url", "", "url of the tool, when several share the name")
}

func runOpen(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")

	ctrl, cleanup, err := openController(cmd, popup.BrowserOpener{})
	if err != nil {
		return err
	}
	defer cleanup()

	o := OpenCmd{ctrl: ctrl}
	return o.Open(cmd.Context(), OpenInput{Name: args[0], URL: url})
}
