// Package templates holds the fixed catalog of paper templates used by the
// generate command.
package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackwell-systems/paperctl/internal/catalog"
)

// Template kinds.
const (
	Research  = "research"
	Review    = "review"
	Technical = "technical"
)

// Template is a named list of required sections plus a citation format.
type Template struct {
	Kind     string   `yaml:"kind" json:"kind"`
	Name     string   `yaml:"name" json:"name"`
	Sections []string `yaml:"sections" json:"sections"`
	Format   string   `yaml:"format" json:"format"`
}

// Override replaces parts of a built-in template. Empty fields keep the
// built-in value.
type Override struct {
	Sections []string `mapstructure:"sections"`
	Format   string   `mapstructure:"format"`
}

// Catalog is an immutable set of templates keyed by kind.
type Catalog struct {
	byKind map[string]Template
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{byKind: map[string]Template{
		Research: {
			Kind:     Research,
			Name:     "Research Paper",
			Sections: []string{"Abstract", "Introduction", "Methodology", "Results", "Discussion", "Conclusion", "References"},
			Format:   "APA 7th Edition",
		},
		Review: {
			Kind:     Review,
			Name:     "Literature Review",
			Sections: []string{"Abstract", "Introduction", "Literature Review", "Analysis", "Discussion", "Conclusion", "References"},
			Format:   "IEEE",
		},
		Technical: {
			Kind:     Technical,
			Name:     "Technical Report",
			Sections: []string{"Abstract", "Introduction", "System Overview", "Implementation", "Evaluation", "Conclusion", "References"},
			Format:   "ACM",
		},
	}}
}

// WithOverrides returns a copy of c with configured overrides applied.
// Overrides may only adjust existing kinds; the catalog is not extensible.
func (c *Catalog) WithOverrides(overrides map[string]Override) (*Catalog, error) {
	out := &Catalog{byKind: make(map[string]Template, len(c.byKind))}
	for k, t := range c.byKind {
		out.byKind[k] = t
	}
	for kind, o := range overrides {
		kind = strings.ToLower(kind)
		t, ok := out.byKind[kind]
		if !ok {
			return nil, fmt.Errorf("template override: unknown kind %q", kind)
		}
		if len(o.Sections) > 0 {
			t.Sections = append([]string(nil), o.Sections...)
		}
		if o.Format != "" {
			t.Format = o.Format
		}
		out.byKind[kind] = t
	}
	return out, nil
}

// Lookup returns the template for kind or a validation error.
func (c *Catalog) Lookup(kind string) (Template, error) {
	t, ok := c.byKind[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return Template{}, catalog.Invalid("template", "Invalid template type")
	}
	t.Sections = append([]string(nil), t.Sections...)
	return t, nil
}

// All returns every template ordered by kind.
func (c *Catalog) All() []Template {
	out := make([]Template, 0, len(c.byKind))
	for _, t := range c.byKind {
		t.Sections = append([]string(nil), t.Sections...)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Placeholder is the text used for a section the user left empty.
func Placeholder(section string) string {
	return "[" + section + " content will be generated here]"
}

// Content fills every section of t. User text is matched to sections by
// name, ignoring case and surrounding space; blank text falls back to the
// placeholder.
func (t Template) Content(fields map[string]string) map[string]string {
	normalized := make(map[string]string, len(fields))
	for k, v := range fields {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	content := make(map[string]string, len(t.Sections))
	for _, section := range t.Sections {
		text := normalized[strings.ToLower(section)]
		if strings.TrimSpace(text) == "" {
			text = Placeholder(section)
		}
		content[section] = text
	}
	return content
}

// Meta builds the template metadata attached to a generated paper.
func (t Template) Meta(fields map[string]string) *catalog.TemplateMeta {
	return &catalog.TemplateMeta{
		Kind:     t.Kind,
		Sections: append([]string(nil), t.Sections...),
		Format:   t.Format,
		Content:  t.Content(fields),
	}
}
