package render

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nickng/bibtex"

	"github.com/blackwell-systems/paperctl/internal/catalog"
)

// BibTeX renders papers as a bibliography. Generated technical reports
// become @techreport; everything else is @article.
func BibTeX(papers []catalog.Paper) string {
	bib := bibtex.NewBibTex()
	seen := make(map[string]int)
	for _, p := range papers {
		bib.AddEntry(bibEntry(p, seen))
	}
	return bib.PrettyString()
}

func bibEntry(p catalog.Paper, seen map[string]int) *bibtex.BibEntry {
	entryType := "article"
	if p.HasTemplate() && p.Template.Kind == "technical" {
		entryType = "techreport"
	}

	key := CiteKey(p)
	if n := seen[key]; n > 0 {
		seen[key]++
		key += string(rune('a' + n))
	} else {
		seen[key] = 1
	}

	e := bibtex.NewBibEntry(entryType, key)
	e.AddField("title", bibtex.NewBibConst(p.Title))
	if p.Author != "" {
		e.AddField("author", bibtex.NewBibConst(p.Author))
	}
	if !p.DateAdded.IsZero() {
		e.AddField("year", bibtex.NewBibConst(strconv.Itoa(p.DateAdded.Year())))
	}
	if p.Description != "" {
		e.AddField("abstract", bibtex.NewBibConst(p.Description))
	}
	if p.Category != "" {
		e.AddField("keywords", bibtex.NewBibConst(p.Category))
	}
	if p.HasTemplate() {
		e.AddField("note", bibtex.NewBibConst("Citation format: "+p.Template.Format))
	}
	e.AddField("file", bibtex.NewBibConst(p.FileName))
	return e
}

// CiteKey builds a citation key from the author's surname, the year added
// and the first word of the title, e.g. doe2024introduction.
func CiteKey(p catalog.Paper) string {
	var b strings.Builder
	fields := strings.Fields(p.Author)
	if len(fields) > 0 {
		b.WriteString(keyPart(fields[len(fields)-1]))
	}
	if !p.DateAdded.IsZero() {
		b.WriteString(strconv.Itoa(p.DateAdded.Year()))
	}
	if words := strings.Fields(p.Title); len(words) > 0 {
		b.WriteString(keyPart(words[0]))
	}
	if b.Len() == 0 {
		return "paper" + strconv.Itoa(p.ID)
	}
	return b.String()
}

func keyPart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
