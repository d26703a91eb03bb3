package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/config"
	"github.com/blackwell-systems/paperctl/internal/render"
	"github.com/blackwell-systems/paperctl/internal/util"
)

const seedYAML = `
- id: 4
  title: "Zeta Functions"
  author: "Bernhard Riemann"
  category: "Mathematics"
  description: "Analytic continuation"
  date_added: 2024-01-05
  file_name: zeta.pdf
- id: 9
  title: "Attention Is All You Need"
  author: "Ashish Vaswani"
  category: "Computer Science"
  description: "Transformers"
  date_added: 2024-06-12
  file_name: attention.pdf
`

// useConfig points PAPERCTL_CONFIG at a temp file holding body.
func useConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PAPERCTL_CONFIG", path)
	return dir
}

func useSeed(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yml")
	if err := os.WriteFile(seed, []byte(seedYAML), 0600); err != nil {
		t.Fatal(err)
	}
	useConfig(t, "catalog:\n  seed_file: "+seed+"\nlog:\n  level: error\n")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_NonInteractivePrintsList(t *testing.T) {
	useConfig(t, "log:\n  level: error\n")

	out, err := execute(t, "--no-interactive")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Introduction to Machine Learning") {
		t.Errorf("output missing seed paper:\n%s", out)
	}
}

func TestList_JSONSortedFromSeedFile(t *testing.T) {
	useSeed(t)

	out, err := execute(t, "list", "--json", "--sort", "title")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var cards []render.Card
	if err := json.Unmarshal([]byte(out), &cards); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].ID != 9 || cards[1].ID != 4 {
		t.Errorf("order = %d,%d, want 9,4", cards[0].ID, cards[1].ID)
	}
}

func TestList_Query(t *testing.T) {
	useSeed(t)

	out, err := execute(t, "list", "--query", "RIEMANN")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Zeta Functions") || strings.Contains(out, "Attention") {
		t.Errorf("unexpected list output:\n%s", out)
	}
}

func TestList_NoMatches(t *testing.T) {
	useSeed(t)

	out, err := execute(t, "list", "--query", "quantum")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != render.EmptyMessage {
		t.Errorf("output = %q, want %q", out, render.EmptyMessage)
	}
}

func TestTemplates_JSON(t *testing.T) {
	useConfig(t, "templates:\n  review:\n    format: Chicago\nlog:\n  level: error\n")

	out, err := execute(t, "templates", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var tpls []struct {
		Kind   string `json:"kind"`
		Format string `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &tpls); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(tpls) != 3 {
		t.Fatalf("got %d templates, want 3", len(tpls))
	}
	for _, tpl := range tpls {
		if tpl.Kind == "review" && tpl.Format != "Chicago" {
			t.Errorf("review format = %q, want override Chicago", tpl.Format)
		}
	}
}

func TestExport_YAMLToFileRoundTrips(t *testing.T) {
	useSeed(t)
	dest := filepath.Join(t.TempDir(), "out", "papers.yml")

	if _, err := execute(t, "export", "--format", "yaml", "--output", dest); err != nil {
		t.Fatalf("execute: %v", err)
	}
	papers, err := catalog.Load(dest)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(papers) != 2 || papers[0].ID != 4 || papers[0].Added() != "2024-01-05" {
		t.Errorf("exported papers = %+v", papers)
	}
}

func TestExport_BibTeXToStdout(t *testing.T) {
	useConfig(t, "log:\n  level: error\n")

	out, err := execute(t, "export", "--format", "bibtex")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "doe2024introduction") {
		t.Errorf("bibtex output missing cite key:\n%s", out)
	}
}

func TestEncodeExport(t *testing.T) {
	papers := catalog.SeedPapers()

	data, err := encodeExport(papers, formatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []catalog.Paper
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if len(decoded) != 1 || decoded[0].FileName != "intro_to_ml.pdf" {
		t.Errorf("decoded = %+v", decoded)
	}

	if _, err := encodeExport(papers, "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestVersion(t *testing.T) {
	useConfig(t, "log:\n  level: error\n")
	SetVersion("1.2.3")
	defer SetVersion("dev")

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "paperctl 1.2.3") {
		t.Errorf("version output = %q", out)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	useConfig(t, "notify:\n  duration: 0s\n")

	_, err := execute(t, "list")
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Errorf("err = %v, want loading config error", err)
	}
}

func TestMissingSeedFileStartsEmpty(t *testing.T) {
	useConfig(t, "catalog:\n  seed_file: /no/such/seed.yml\nlog:\n  level: error\n")

	out, err := execute(t, "list", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("output = %q, want []", out)
	}
}

func TestNewLogger_InteractiveWithoutFileIsNop(t *testing.T) {
	l, err := newLogger(config.LogConfig{Level: "debug"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zap.ErrorLevel) {
		t.Error("interactive logger without a file should discard everything")
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "paperctl.log")
	l, err := newLogger(config.LogConfig{Level: "warn", File: path}, true)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("visible", zap.Int("id", 3))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), `"msg":"visible"`) {
		t.Errorf("log file = %s", data)
	}
}

func TestList_TerminalCards(t *testing.T) {
	useConfig(t, "log:\n  level: error\n")
	isTerminal = func() bool { return true }
	defer func() { isTerminal = util.IsRichTerminal }()

	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "╭") || !strings.Contains(out, "Introduction to Machine Learning") {
		t.Errorf("expected a bordered card:\n%s", out)
	}
}
