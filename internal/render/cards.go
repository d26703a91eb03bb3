// Package render maps papers to displayable output: card view-models,
// terminal cards, the HTML page, BibTeX and markdown detail.
package render

import (
	"strconv"
	"strings"

	"github.com/blackwell-systems/paperctl/internal/catalog"
)

// Action is a per-card affordance keyed by paper ID.
type Action struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	ID    int    `json:"id"`
}

// Actions offered on every card, in display order.
var cardActions = []struct{ name, label string }{
	{"download", "Download"},
	{"share", "Share"},
	{"edit", "Edit"},
	{"delete", "Delete"},
}

// Card is the view-model of one paper.
type Card struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	DateAdded   string   `json:"date_added"`
	FileName    string   `json:"file_name"`
	Template    string   `json:"template,omitempty"`
	Format      string   `json:"format,omitempty"`
	Sections    []string `json:"sections,omitempty"`
	Actions     []Action `json:"actions"`
}

// Cards maps papers to cards in the same order. The result depends only on
// the input, so rendering the same slice twice gives equal output.
func Cards(papers []catalog.Paper) []Card {
	out := make([]Card, len(papers))
	for i, p := range papers {
		out[i] = NewCard(p)
	}
	return out
}

// NewCard builds the card for a single paper.
func NewCard(p catalog.Paper) Card {
	c := Card{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Category:    p.Category,
		Description: p.Description,
		DateAdded:   p.Added(),
		FileName:    p.FileName,
		Actions:     make([]Action, len(cardActions)),
	}
	if p.HasTemplate() {
		c.Template = p.Template.Kind
		c.Format = p.Template.Format
		c.Sections = append([]string(nil), p.Template.Sections...)
	}
	for i, a := range cardActions {
		c.Actions[i] = Action{Name: a.name, Label: a.label, ID: p.ID}
	}
	return c
}

// TemplateSummary is the one-line template note shown on generated papers,
// or "" for uploads.
func (c Card) TemplateSummary() string {
	if c.Template == "" {
		return ""
	}
	return "Template: " + c.Template + " (" + c.Format + ") · " + strings.Join(c.Sections, ", ")
}

// Key is the stable DOM/list key of the card.
func (c Card) Key() string {
	return "paper-" + strconv.Itoa(c.ID)
}
