package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/templates"
)

// Markdown describes one paper: its metadata and, for generated papers,
// every template section in order.
func Markdown(p catalog.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**%s** · %s · added %s\n\n", p.Author, p.Category, p.Added())
	if p.Description != "" {
		fmt.Fprintf(&b, "> %s\n\n", p.Description)
	}
	fmt.Fprintf(&b, "File: `%s`\n", p.FileName)

	if !p.HasTemplate() {
		return b.String()
	}
	fmt.Fprintf(&b, "\nTemplate: *%s* · citation format *%s*\n", p.Template.Kind, p.Template.Format)
	for _, section := range p.Template.Sections {
		text := p.Template.Content[section]
		if text == "" {
			text = templates.Placeholder(section)
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", section, text)
	}
	return b.String()
}

// Detail renders Markdown(p) for a terminal width columns wide.
func Detail(p catalog.Paper, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(Markdown(p))
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
