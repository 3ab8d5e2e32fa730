package cmd

import (
	"runtime"

	"github.com/osintex/cli/pkg/table"
	"github.com/osintex/cli/pkg/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Version needs no config
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "json" {
			return util.PrintPrettyJSON(map[string]string{
				"version": metadata.Version,
				"commit":  metadata.Commit,
				"date":    metadata.Date,
				"go":      runtime.Version(),
			})
		}

		rows := pterm.TableData{{"Property", "Value"}}
		rows = append(rows, []string{"Version", metadata.Version})
		rows = append(rows, []string{"Commit", metadata.Commit})
		rows = append(rows, []string{"Built", metadata.Date})
		rows = append(rows, []string{"Go", runtime.Version()})
		rows = append(rows, []string{"Platform", runtime.GOOS + "/" + runtime.GOARCH})
		table.PrintTableNoPad(rows, true)
		return nil
	},
}

func init() {
	versionCmd.Flags().StringP("output", "o", "", "output format: json")
}
