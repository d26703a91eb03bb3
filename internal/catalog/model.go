package catalog

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for DateAdded in views and seed files.
const DateLayout = "2006-01-02"

// Paper is one entry in the in-memory catalog.
type Paper struct {
	ID          int           `yaml:"id" json:"id"`
	Title       string        `yaml:"title" json:"title"`
	Author      string        `yaml:"author" json:"author"`
	Category    string        `yaml:"category" json:"category"`
	Description string        `yaml:"description,omitempty" json:"description"`
	DateAdded   time.Time     `yaml:"date_added" json:"date_added"`
	FileName    string        `yaml:"file_name" json:"file_name"`
	Template    *TemplateMeta `yaml:"template,omitempty" json:"template,omitempty"`
}

// TemplateMeta is attached to papers produced by the generate command.
type TemplateMeta struct {
	Kind     string            `yaml:"kind" json:"kind"`
	Sections []string          `yaml:"sections" json:"sections"`
	Format   string            `yaml:"format" json:"format"`
	Content  map[string]string `yaml:"content,omitempty" json:"content,omitempty"`
}

// Patch carries the fields an edit may change. ID, DateAdded and FileName
// are deliberately absent.
type Patch struct {
	Title       string
	Author      string
	Category    string
	Description string
}

// Categories offered by the upload and generate forms. Any non-empty
// category is accepted.
var Categories = []string{"Computer Science", "Mathematics", "Physics", "Engineering"}

// Date truncates t to a UTC calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MustDate parses a YYYY-MM-DD string and panics on failure. Intended for
// seed data and tests.
func MustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Added returns DateAdded formatted as YYYY-MM-DD.
func (p Paper) Added() string {
	if p.DateAdded.IsZero() {
		return ""
	}
	return p.DateAdded.Format(DateLayout)
}

// HasTemplate reports whether the paper was generated from a template.
func (p Paper) HasTemplate() bool {
	return p.Template != nil && p.Template.Kind != ""
}

// clone returns a deep copy so callers can't reach into the store.
func (p Paper) clone() Paper {
	if p.Template == nil {
		return p
	}
	t := *p.Template
	t.Sections = append([]string(nil), p.Template.Sections...)
	if p.Template.Content != nil {
		t.Content = make(map[string]string, len(p.Template.Content))
		for k, v := range p.Template.Content {
			t.Content[k] = v
		}
	}
	p.Template = &t
	return p
}

// GeneratedFileName derives the file name for a generated paper from its
// title: lower case, whitespace runs replaced by underscores, ".pdf" suffix.
func GeneratedFileName(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "_") + ".pdf"
}

// SeedPapers is the catalog a fresh session starts with when no seed file
// is configured.
func SeedPapers() []Paper {
	return []Paper{
		{
			ID:          1,
			Title:       "Introduction to Machine Learning",
			Author:      "John Doe",
			Category:    "Computer Science",
			Description: "A comprehensive overview of machine learning fundamentals",
			DateAdded:   MustDate("2024-02-25"),
			FileName:    "intro_to_ml.pdf",
		},
	}
}
