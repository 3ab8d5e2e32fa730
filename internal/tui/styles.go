package tui

import "github.com/charmbracelet/lipgloss/v2"

// Styles holds the lipgloss styles used when rendering.
type Styles struct {
	Title       lipgloss.Style
	Badge       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Search      lipgloss.Style
	Section     lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
	URL         lipgloss.Style
	Star        lipgloss.Style
	Card        lipgloss.Style
	Empty       lipgloss.Style
	Error       lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	accent := lipgloss.Color("#7D56F4")
	muted := lipgloss.Color("#6C6C6C")
	star := lipgloss.Color("#F5B301")

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Badge:       lipgloss.NewStyle().Foreground(star),
		Tab:         lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		ActiveTab:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(accent),
		Search:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).MarginTop(1),
		Item:        lipgloss.NewStyle().PaddingLeft(2),
		Selected:    lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(accent),
		Description: lipgloss.NewStyle().Foreground(muted),
		URL:         lipgloss.NewStyle().Foreground(muted).Italic(true),
		Star:        lipgloss.NewStyle().Foreground(star),
		Card:        lipgloss.NewStyle().PaddingLeft(2),
		Empty:       lipgloss.NewStyle().Foreground(muted).Padding(1, 2),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")).Padding(1, 2),
		Status:      lipgloss.NewStyle().Foreground(muted),
		Help:        lipgloss.NewStyle().Foreground(muted),
	}
}
