// Package table prints pterm tables the way every osintex command does.
package table

import (
	"strings"

	"github.com/pterm/pterm"
)

// PrintTableNoPad prints rows as a table without the surrounding padding
// pterm adds by default. Empty cells are shown as "-".
func PrintTableNoPad(rows pterm.TableData, hasHeader bool) {
	out, err := Render(rows, hasHeader)
	if err != nil {
		pterm.Error.Printf("failed to render table: %v\n", err)
		return
	}
	pterm.Println(out)
}

// Render returns the table as a string, trailing whitespace trimmed per line.
func Render(rows pterm.TableData, hasHeader bool) (string, error) {
	filled := make(pterm.TableData, len(rows))
	for i, row := range rows {
		filled[i] = make([]string, len(row))
		for j, cell := range row {
			if cell == "" {
				cell = "-"
			}
			filled[i][j] = cell
		}
	}

	out, err := pterm.DefaultTable.
		WithHasHeader(hasHeader).
		WithSeparator("  ").
		WithData(filled).
		Srender()
	if err != nil {
		return "", err
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}
