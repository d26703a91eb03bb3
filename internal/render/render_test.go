package render_test

import (
	"reflect"
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/nickng/bibtex"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/render"
	"github.com/blackwell-systems/paperctl/internal/templates"
)

func samplePapers() []catalog.Paper {
	tpl, _ := templates.Default().Lookup(templates.Technical)
	return []catalog.Paper{
		catalog.SeedPapers()[0],
		{
			ID:          2,
			Title:       "Cache <Design>",
			Author:      "Ada Byron",
			Category:    "Engineering",
			Description: "Write-back & write-through",
			DateAdded:   catalog.MustDate("2024-03-10"),
			FileName:    "cache_<design>.pdf",
			Template:    tpl.Meta(map[string]string{"Implementation": "LRU"}),
		},
	}
}

func TestCards_OrderAndFields(t *testing.T) {
	cards := render.Cards(samplePapers())
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].ID != 1 || cards[1].ID != 2 {
		t.Errorf("card order = %d,%d, want 1,2", cards[0].ID, cards[1].ID)
	}
	if cards[0].DateAdded != "2024-02-25" {
		t.Errorf("DateAdded = %q, want %q", cards[0].DateAdded, "2024-02-25")
	}
	if cards[0].Template != "" || cards[0].TemplateSummary() != "" {
		t.Errorf("upload card has template info: %+v", cards[0])
	}
	if cards[1].Format != "ACM" || len(cards[1].Sections) != 7 {
		t.Errorf("generated card template = %q/%v", cards[1].Format, cards[1].Sections)
	}
	var names []string
	for _, a := range cards[1].Actions {
		if a.ID != 2 {
			t.Errorf("action %q keyed by %d, want 2", a.Name, a.ID)
		}
		names = append(names, a.Name)
	}
	if want := []string{"download", "share", "edit", "delete"}; !reflect.DeepEqual(names, want) {
		t.Errorf("actions = %v, want %v", names, want)
	}
}

func TestCards_Idempotent(t *testing.T) {
	papers := samplePapers()
	if !reflect.DeepEqual(render.Cards(papers), render.Cards(papers)) {
		t.Error("rendering the same papers twice gave different cards")
	}
	if got := render.HTML(render.PageData{Cards: render.Cards(papers)}); got != render.HTML(render.PageData{Cards: render.Cards(papers)}) {
		t.Error("HTML output not idempotent")
	}
}

func TestCards_Empty(t *testing.T) {
	if cards := render.Cards(nil); cards == nil || len(cards) != 0 {
		t.Errorf("Cards(nil) = %v, want empty non-nil", cards)
	}
}

func TestTerminal_TruncatesToWidth(t *testing.T) {
	p := catalog.SeedPapers()[0]
	p.Title = strings.Repeat("Long title ", 20)
	out := render.TerminalCard(render.NewCard(p), 40, false)
	for _, line := range strings.Split(out, "\n") {
		if w := xansi.StringWidth(line); w > 40 {
			t.Errorf("line wider than 40 cells (%d): %q", w, line)
		}
	}
	if !strings.Contains(out, "…") {
		t.Error("long title was not truncated with an ellipsis")
	}
}

func TestTerminal_Empty(t *testing.T) {
	if out := render.Terminal(nil, 60, -1); !strings.Contains(out, render.EmptyMessage) {
		t.Errorf("Terminal(nil) = %q, want empty message", out)
	}
}

func TestPlain(t *testing.T) {
	out := render.Plain(render.Cards(samplePapers()))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "1\t2024-02-25\tIntroduction to Machine Learning\t") {
		t.Errorf("line 0 = %q", lines[0])
	}
}

func TestHTML_EscapesAndLists(t *testing.T) {
	out := render.HTML(render.PageData{
		Cards:      render.Cards(samplePapers()),
		Total:      2,
		Query:      `"><script>`,
		Sort:       catalog.SortTitle,
		Templates:  templates.Default().All(),
		Categories: catalog.Categories,
	})
	if strings.Contains(out, "Cache <Design>") || strings.Contains(out, `value=""><script>`) {
		t.Error("user text not escaped")
	}
	for _, want := range []string{
		"Cache &lt;Design&gt;",
		`id="paper-1"`,
		`data-action="share" data-id="2"`,
		`<option value="title" selected>`,
		"2 of 2 papers",
		"Technical Report (ACM)",
		"Computer Science",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestHTML_NoResults(t *testing.T) {
	out := render.HTML(render.PageData{Total: 3})
	if !strings.Contains(out, render.EmptyMessage) {
		t.Error("empty page lacks the no-results message")
	}
}

func TestBibTeX_Parses(t *testing.T) {
	tpl, _ := templates.Default().Lookup(templates.Technical)
	papers := []catalog.Paper{
		catalog.SeedPapers()[0],
		{ID: 2, Title: "Cache Design", Author: "Ada Byron", Category: "Engineering",
			DateAdded: catalog.MustDate("2024-03-10"), FileName: "cache_design.pdf", Template: tpl.Meta(nil)},
	}
	out := render.BibTeX(papers)
	bib, err := bibtex.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("bibtex.Parse: %v\n%s", err, out)
	}
	if len(bib.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(bib.Entries))
	}
	if bib.Entries[0].CiteName != "doe2024introduction" || bib.Entries[0].Type != "article" {
		t.Errorf("entry 0 = %s/%s", bib.Entries[0].Type, bib.Entries[0].CiteName)
	}
	if bib.Entries[1].Type != "techreport" || bib.Entries[1].CiteName != "byron2024cache" {
		t.Errorf("entry 1 = %s/%s", bib.Entries[1].Type, bib.Entries[1].CiteName)
	}
}

func TestCiteKey_Fallback(t *testing.T) {
	if got := render.CiteKey(catalog.Paper{ID: 9}); got != "paper9" {
		t.Errorf("CiteKey = %q, want %q", got, "paper9")
	}
}

func TestMarkdown_Sections(t *testing.T) {
	md := render.Markdown(samplePapers()[1])
	for _, want := range []string{"# Cache <Design>", "## Implementation\n\nLRU", "[Evaluation content will be generated here]"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(render.Markdown(samplePapers()[0]), "##") {
		t.Error("uploaded paper should have no sections")
	}
}

func TestDetail_Renders(t *testing.T) {
	out, err := render.Detail(samplePapers()[1], 60)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if !strings.Contains(xansi.Strip(out), "Implementation") {
		t.Error("detail output lacks section heading")
	}
}
