package catalog

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
)

// ImportVersion is stamped on catalogs produced by ParseMarkdown.
const ImportVersion = "1.0.0"

const (
	categoryPrefix = "### "
	itemPrefix     = "- ["
)

var (
	itemLine = regexp.MustCompile(`^- \[([^\]]+)\]\(([^)]+)\)(.*)$`)

	// Sections that are not imported. Parsing stops entirely at stopSection.
	skippedSections = map[string]bool{"Unclassified": true}
	stopSection     = "Not working / Paused"
)

// ParseMarkdown builds a catalog from an awesome-list style README:
//
//	### Category
//	Optional description text.
//	- [Name](https://example.com) - Optional description
func ParseMarkdown(r io.Reader) (*Catalog, error) {
	policy := bluemonday.StrictPolicy()
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
	}

	var (
		categories []Category
		current    *Category
		inHeader   bool
		descLines  []string
	)
	flushDescription := func() {
		if current != nil && len(descLines) > 0 {
			current.Description = clean(strings.Join(descLines, " "))
		}
		descLines = nil
		inHeader = false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.HasPrefix(line, categoryPrefix):
			flushDescription()
			name := strings.TrimSpace(strings.TrimPrefix(line, categoryPrefix))
			if name == stopSection {
				return finish(categories)
			}
			if skippedSections[name] {
				current = nil
				continue
			}
			categories = append(categories, Category{
				ID:    Slug(name),
				Name:  name,
				Items: []Item{},
			})
			current = &categories[len(categories)-1]
			inHeader = true

		case strings.HasPrefix(line, itemPrefix):
			flushDescription()
			if current == nil {
				continue
			}
			m := itemLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current.Items = append(current.Items, Item{
				Name:        clean(m[1]),
				URL:         strings.TrimSpace(m[2]),
				Description: clean(itemDescription(m[3])),
			})

		case inHeader:
			text := strings.TrimSpace(line)
			if text != "" && !strings.HasPrefix(text, "#") {
				descLines = append(descLines, text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}
	flushDescription()
	return finish(categories)
}

// ParseHTML converts an HTML page to markdown and parses it with ParseMarkdown.
func ParseHTML(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read html: %w", err)
	}
	md, err := htmltomarkdown.ConvertString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to convert html: %w", err)
	}
	return ParseMarkdown(strings.NewReader(md))
}

// Slug derives a category id from its display name.
func Slug(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.ReplaceAll(id, " ", "-")
	id = strings.ReplaceAll(id, "&", "and")
	return strings.ReplaceAll(id, "/", "-")
}

func itemDescription(rest string) string {
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "-")
	return strings.TrimSpace(rest)
}

func finish(categories []Category) (*Catalog, error) {
	cat := &Catalog{Version: ImportVersion, Categories: categories}
	if cat.Categories == nil {
		cat.Categories = []Category{}
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
