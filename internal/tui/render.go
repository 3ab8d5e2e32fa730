package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/osintex/cli/internal/view"
	"github.com/osintex/cli/pkg/util"
)

// chromeHeight is the number of lines drawn around the body.
const chromeHeight = 8

// View implements tea.Model.
func (m Model) View() string {
	if err := m.ctrl.Err(); err != nil {
		return m.styles.Error.Render(err.Error()) + "\n" +
			m.styles.Help.Render("  press q to quit") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(m.searchBox())
	b.WriteString("\n")
	b.WriteString(m.body())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) header() string {
	title := m.styles.Title.Render("OSINT Tools")
	total := m.styles.Description.Render(fmt.Sprintf("%d tools", m.ctrl.TotalCount()))
	parts := []string{title, " ", total}
	if n := m.ctrl.FavoriteCount(); n > 0 {
		parts = append(parts, "  ", m.styles.Badge.Render(fmt.Sprintf("★ %d", n)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) tabs() string {
	rendered := make([]string, 0, len(view.Tabs))
	for i, tab := range view.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Title())
		if tab == m.result.Tab {
			rendered = append(rendered, m.styles.ActiveTab.Render(label))
		} else {
			rendered = append(rendered, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) searchBox() string {
	width := max(m.width-4, 20)
	if m.searching || m.search.Value() != "" {
		return m.styles.Search.Width(width).Render(m.search.View())
	}
	return m.styles.Search.Width(width).Render(m.styles.Description.Render("press / to search"))
}

// body renders the entries and scrolls so the cursor stays visible.
func (m Model) body() string {
	if m.result.Empty() {
		headline, hint := m.result.EmptyMessage()
		if headline == "" {
			return ""
		}
		return m.styles.Empty.Render(headline + "\n" + m.styles.Description.Render(hint))
	}

	var lines []string
	selectedLine := 0

	if m.result.Kind == view.KindDetail && m.result.Detail != nil {
		d := m.result.Detail
		lines = append(lines, m.styles.Section.Render("← "+view.TabCategories.Title()+" / "+d.Name))
		if d.Description != "" {
			lines = append(lines, m.styles.Description.Render(d.Description))
		}
	}

	section := ""
	for i, e := range m.entries {
		if !e.isCard && m.result.Kind == view.KindSections && e.section != section {
			section = e.section
			lines = append(lines, m.styles.Section.Render(section))
		}
		if i == m.cursor {
			selectedLine = len(lines)
		}
		lines = append(lines, m.renderEntry(e, i == m.cursor))
	}

	height := max(m.height-chromeHeight, 3)
	if len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := 0
	if selectedLine >= height {
		start = selectedLine - height + 1
	}
	end := min(start+height, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderEntry(e entry, selected bool) string {
	style := m.styles.Item
	prefix := ""
	if selected {
		style = m.styles.Selected
		prefix = "› "
	}
	width := max(m.width-10, 20)

	if e.isCard {
		line := fmt.Sprintf("%s%s %s", prefix, e.card.Name,
			m.styles.Description.Render(fmt.Sprintf("(%s)", util.Plural(e.card.ItemCount, "tool", "tools"))))
		if e.card.Description != "" {
			line += "  " + m.styles.Description.Render(util.Truncate(e.card.Description, width/2))
		}
		return m.styles.Card.Render(line)
	}

	star := "  "
	if m.ctrl.IsFavorite(e.item) {
		star = m.styles.Star.Render("★ ")
	}
	line := prefix + star + e.item.Name
	if e.item.Description != "" {
		line += "  " + m.styles.Description.Render(util.Truncate(e.item.Description, width/2))
	}
	if selected {
		line += "  " + m.styles.URL.Render(util.Truncate(e.item.URL, width/2))
	}
	return style.Render(line)
}

func (m Model) footer() string {
	count := m.styles.Status.Render(util.Plural(m.result.Count, "result", "results"))
	if m.status != "" {
		count += m.styles.Status.Render("  " + m.status)
	}
	h := help.New()
	h.Width = m.width
	return count + "\n" + m.styles.Help.Render(h.ShortHelpView(m.keys.shortHelp()))
}
