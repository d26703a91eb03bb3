package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a derived view.
type SortKey string

// Recognised sort keys.
const (
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
	SortDate   SortKey = "date"
)

// SortKeys lists the keys in the order the UI cycles through them.
var SortKeys = []SortKey{SortDate, SortTitle, SortAuthor}

// ParseSortKey normalises user input ("Title", " date ") to a SortKey.
// Unknown input is returned as-is and sorts as a no-op.
func ParseSortKey(s string) SortKey {
	return SortKey(strings.ToLower(strings.TrimSpace(s)))
}

// Sort returns a sorted copy of papers. Title and author sort ascending
// using locale-aware collation; date sorts most recent first. An
// unrecognised key returns the papers in their original order.
func Sort(papers []Paper, key SortKey) []Paper {
	out := append([]Paper(nil), papers...)

	switch key {
	case SortTitle:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortAuthor:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Author, out[j].Author) < 0
		})
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateAdded.After(out[j].DateAdded)
		})
	}
	return out
}

// A collator is not safe for concurrent use, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
