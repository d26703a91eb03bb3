package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// EmptyMessage is shown when no card matches.
const EmptyMessage = "No papers found"

var (
	colorTitle    = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}
	colorMeta     = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}
	colorCategory = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}
	colorSelected = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	cardTitle    = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	cardMeta     = lipgloss.NewStyle().Foreground(colorMeta)
	cardCategory = lipgloss.NewStyle().Foreground(colorCategory)
	cardBox      = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorMeta).
			Padding(0, 1)
	cardBoxSelected = cardBox.BorderForeground(colorSelected)
)

// minCardWidth keeps very narrow terminals readable.
const minCardWidth = 24

// TerminalCard renders one card as a bordered box width cells wide.
func TerminalCard(c Card, width int, selected bool) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	// border (2) + padding (2)
	inner := width - 4

	var b strings.Builder
	b.WriteString(cardTitle.Render(xansi.Truncate(c.Title, inner, "…")))
	b.WriteString("\n")
	b.WriteString(cardMeta.Render(xansi.Truncate("by "+c.Author+" · "+c.DateAdded, inner, "…")))
	b.WriteString("\n")
	b.WriteString(cardCategory.Render(xansi.Truncate(c.Category, inner, "…")))
	if c.Description != "" {
		b.WriteString("\n")
		b.WriteString(xansi.Truncate(c.Description, inner, "…"))
	}
	if s := c.TemplateSummary(); s != "" {
		b.WriteString("\n")
		b.WriteString(cardMeta.Render(xansi.Truncate(s, inner, "…")))
	}
	b.WriteString("\n")
	b.WriteString(cardMeta.Render(xansi.Truncate("#"+strconv.Itoa(c.ID)+" "+c.FileName, inner, "…")))

	box := cardBox
	if selected {
		box = cardBoxSelected
	}
	return box.Width(inner + 2).Render(b.String())
}

// Terminal renders every card stacked vertically. selected is the index of
// the highlighted card, or -1 for none.
func Terminal(cards []Card, width, selected int) string {
	if len(cards) == 0 {
		return cardMeta.Render(EmptyMessage)
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = TerminalCard(c, width, i == selected)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Plain renders cards as one line each, for piped output.
func Plain(cards []Card) string {
	if len(cards) == 0 {
		return EmptyMessage + "\n"
	}
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(strconv.Itoa(c.ID))
		b.WriteString("\t")
		b.WriteString(c.DateAdded)
		b.WriteString("\t")
		b.WriteString(c.Title)
		b.WriteString("\t")
		b.WriteString(c.Author)
		b.WriteString("\t")
		b.WriteString(c.Category)
		b.WriteString("\n")
	}
	return b.String()
}
