package catalog

import "strings"

// Filter applies all non-empty criteria and returns matching papers.
type Filter struct {
	Search   string // matches title, author, or description
	Category string
}

// Apply returns the subset of papers matching all non-empty filter fields,
// in input order. An empty filter returns every paper.
func (f Filter) Apply(papers []Paper) []Paper {
	out := make([]Paper, 0, len(papers))
	for _, p := range papers {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ByID returns the first paper with the given ID, or nil.
func ByID(papers []Paper, id int) *Paper {
	for i := range papers {
		if papers[i].ID == id {
			return &papers[i]
		}
	}
	return nil
}

func matchesSearch(p Paper, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Author), q) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), q)
}
