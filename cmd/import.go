package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/pkg/table"
	"github.com/osintex/cli/pkg/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Import formats.
const (
	FormatAuto     = "auto"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ImportCmd converts a README-style tool list into a catalog document.
type ImportCmd struct {
	// Now stamps lastUpdated; defaults to time.Now.
	Now func() time.Time
	// Stdout receives the catalog when no output path is given.
	Stdout io.Writer
}

// ImportInput holds input for importing a tool list.
type ImportInput struct {
	Path   string
	Format string
	Output string
}

// Import parses the input and writes the catalog JSON to the output path, or
// to stdout when no path is given.
func (c ImportCmd) Import(ctx context.Context, in ImportInput) error {
	format, err := detectFormat(in.Path, in.Format)
	if err != nil {
		return err
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", in.Path, err)
	}
	defer f.Close()

	var cat *catalog.Catalog
	switch format {
	case FormatHTML:
		cat, err = catalog.ParseHTML(f)
	default:
		cat, err = catalog.ParseMarkdown(f)
	}
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", in.Path, err)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	cat.LastUpdated = now().Format(time.DateOnly)

	if in.Output == "" || in.Output == "-" {
		out := c.Stdout
		if out == nil {
			out = os.Stdout
		}
		return util.WritePrettyJSON(out, cat)
	}

	var buf bytes.Buffer
	if err := util.WritePrettyJSON(&buf, cat); err != nil {
		return err
	}
	if dir := filepath.Dir(in.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := util.WriteFileAtomic(in.Output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	rows := pterm.TableData{{"ID", "Category", "Tools"}}
	for _, category := range cat.Categories {
		rows = append(rows, []string{category.ID, category.Name, fmt.Sprintf("%d", len(category.Items))})
	}
	table.PrintTableNoPad(rows, true)
	pterm.Success.Printf("Wrote %s in %s to %s\n",
		util.Plural(cat.TotalItems(), "tool", "tools"),
		util.Plural(len(cat.Categories), "category", "categories"),
		in.Output)
	return nil
}

func detectFormat(path, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatAuto:
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			return FormatHTML, nil
		}
		return FormatMarkdown, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported --format value %q: use auto, markdown or html", format)
}

var importCmd = &cobra.Command{
	Use:   "import <README.md|page.html>",
	Short: "Build a catalog from a markdown or HTML tool list",
	Long: `Build a catalog from a markdown or HTML tool list.

"### Category" headings start categories and "- [Name](url) - description"
lines become tools. The "Unclassified" section is skipped and parsing stops
at the "Not working / Paused" section.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringP("output", "o", "", "write the catalog to this file instead of stdout")
	importCmd.Flags().String("format", FormatAuto, "input format: auto, markdown or html")
}

func runImport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	c := ImportCmd{Stdout: cmd.OutOrStdout()}
	return c.Import(cmd.Context(), ImportInput{
		Path:   args[0],
		Format: format,
		Output: output,
	})
}
