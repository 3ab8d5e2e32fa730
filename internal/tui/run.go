package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/osintex/cli/internal/popup"
)

// Options tweaks how the program is started.
type Options struct {
	// Inline renders in the normal screen buffer instead of the alternate one.
	Inline bool
}

// Run shows the popup until the user quits or ctx is cancelled, then waits
// for pending favorite writes.
func Run(ctx context.Context, ctrl *popup.Controller, opts Options) error {
	defer ctrl.Close()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !opts.Inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(Params{Controller: ctrl}), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run popup: %w", err)
	}
	return nil
}
