package templates_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/templates"
)

func TestLookup_Research(t *testing.T) {
	tpl, err := templates.Default().Lookup("research")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := []string{"Abstract", "Introduction", "Methodology", "Results", "Discussion", "Conclusion", "References"}
	if !reflect.DeepEqual(tpl.Sections, want) {
		t.Errorf("Sections = %v, want %v", tpl.Sections, want)
	}
	if tpl.Format != "APA 7th Edition" {
		t.Errorf("Format = %q, want %q", tpl.Format, "APA 7th Edition")
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := templates.Default().Lookup("thesis")
	if !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if err.Error() != "Invalid template type" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	c := templates.Default()
	tpl, _ := c.Lookup("review")
	tpl.Sections[0] = "mutated"
	again, _ := c.Lookup("review")
	if again.Sections[0] != "Abstract" {
		t.Error("Lookup exposed catalog sections")
	}
}

func TestAll_SortedByKind(t *testing.T) {
	all := templates.Default().All()
	if len(all) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(all))
	}
	if all[0].Kind != "research" || all[1].Kind != "review" || all[2].Kind != "technical" {
		t.Errorf("order = %s,%s,%s", all[0].Kind, all[1].Kind, all[2].Kind)
	}
}

func TestContent_PlaceholderForMissingSections(t *testing.T) {
	tpl, _ := templates.Default().Lookup("technical")
	content := tpl.Content(map[string]string{
		"abstract":        "We built it.",
		"System Overview": "  ",
		"unrelated":       "ignored",
	})
	if len(content) != len(tpl.Sections) {
		t.Fatalf("content has %d sections, want %d", len(content), len(tpl.Sections))
	}
	if content["Abstract"] != "We built it." {
		t.Errorf("Abstract = %q", content["Abstract"])
	}
	if got, want := content["System Overview"], "[System Overview content will be generated here]"; got != want {
		t.Errorf("System Overview = %q, want %q", got, want)
	}
	if _, ok := content["unrelated"]; ok {
		t.Error("content should only hold template sections")
	}
}

func TestWithOverrides(t *testing.T) {
	c, err := templates.Default().WithOverrides(map[string]templates.Override{
		"Review": {Format: "Chicago"},
	})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	tpl, _ := c.Lookup("review")
	if tpl.Format != "Chicago" || tpl.Sections[0] != "Abstract" {
		t.Errorf("override not applied cleanly: %+v", tpl)
	}
	base, _ := templates.Default().Lookup("review")
	if base.Format != "IEEE" {
		t.Error("override leaked into the default catalog")
	}
}

func TestWithOverrides_UnknownKind(t *testing.T) {
	if _, err := templates.Default().WithOverrides(map[string]templates.Override{"thesis": {Format: "MLA"}}); err == nil {
		t.Error("expected error for unknown kind, got nil")
	}
}
