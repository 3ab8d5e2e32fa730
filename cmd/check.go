package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/linkcheck"
	"github.com/osintex/cli/pkg/table"
	"github.com/osintex/cli/pkg/util"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// LinkChecker checks catalog links.
type LinkChecker interface {
	Check(ctx context.Context, targets []linkcheck.Target) ([]linkcheck.Result, error)
}

// CheckCmd reports dead links in the catalog.
type CheckCmd struct {
	catalog *catalog.Catalog
	checker LinkChecker
}

// CheckInput holds input for checking links.
type CheckInput struct {
	Category string
	All      bool
	Output   string
}

// Check probes every link and prints the unhealthy ones (or all with All).
// It returns an error when any link is unhealthy.
func (c CheckCmd) Check(ctx context.Context, in CheckInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	targets, err := linkcheck.Targets(c.catalog, in.Category)
	if err != nil {
		return err
	}

	if in.Output != "json" {
		pterm.Info.Printf("Checking %s...\n", util.Plural(len(targets), "link", "links"))
	}

	results, err := c.checker.Check(ctx, targets)
	if err != nil {
		return fmt.Errorf("failed to check links: %w", err)
	}

	unhealthy := lo.Filter(results, func(r linkcheck.Result, _ int) bool {
		return !r.Healthy()
	})

	if in.Output == "json" {
		if err := util.PrintPrettyJSON(results); err != nil {
			return err
		}
	} else {
		shown := unhealthy
		if in.All {
			shown = results
		}
		if len(shown) > 0 {
			rows := pterm.TableData{{"Status", "Code", "Name", "Category", "URL", "Detail"}}
			for _, r := range shown {
				code := ""
				if r.StatusCode > 0 {
					code = fmt.Sprintf("%d", r.StatusCode)
				}
				detail := r.Error
				if r.Location != "" {
					detail = "→ " + r.Location
				}
				rows = append(rows, []string{r.Status, code, r.Item.Name, r.CategoryID, r.Item.URL, util.Truncate(detail, 60)})
			}
			table.PrintTableNoPad(rows, true)
		}

		if len(unhealthy) == 0 {
			pterm.Success.Printf("All %s answered\n", util.Plural(len(results), "link", "links"))
		} else {
			pterm.Warning.Printf("%s of %d did not answer\n", util.Plural(len(unhealthy), "link", "links"), len(results))
		}
	}

	if len(unhealthy) > 0 {
		return fmt.Errorf("%s unhealthy", util.Plural(len(unhealthy), "link", "links"))
	}
	return nil
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that catalog links still answer",
	Long: `Check that catalog links still answer.

Every url gets a HEAD request (GET when HEAD is refused). Redirects are
reported but count as healthy; 4xx/5xx answers and network errors do not.
Transient failures are retried. Exits non-zero when any link is unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("category", "", "only check this category")
	checkCmd.Flags().Bool("all", false, "list healthy links too")
	checkCmd.Flags().Int("concurrency", linkcheck.DefaultConcurrency, "parallel requests")
	checkCmd.Flags().Duration("timeout", linkcheck.DefaultTimeout, "per-request timeout")
	checkCmd.Flags().Uint64("retries", linkcheck.DefaultRetries, "retries for transient failures")
	checkCmd.Flags().StringP("output", "o", "", "output format: json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	all, _ := cmd.Flags().GetBool("all")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	retries, _ := cmd.Flags().GetUint64("retries")
	output, _ := cmd.Flags().GetString("output")

	a := getApp(cmd)
	cat, err := catalog.NewSource(a.cfg.Catalog).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	c := CheckCmd{
		catalog: cat,
		checker: linkcheck.Checker{
			Concurrency: concurrency,
			Timeout:     timeout,
			Retries:     retries,
			Backoff:     500 * time.Millisecond,
			Logger:      a.logger,
		},
	}
	return c.Check(cmd.Context(), CheckInput{Category: category, All: all, Output: output})
}
