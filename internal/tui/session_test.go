package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/clipboard"
	"github.com/blackwell-systems/paperctl/internal/command"
	"github.com/blackwell-systems/paperctl/internal/notify"
)

func newTestSession(t *testing.T) (Model, *command.Controller, *clipboard.Memory) {
	t.Helper()
	notes := notify.New(time.Hour)
	t.Cleanup(notes.Close)
	clip := &clipboard.Memory{}
	ctl := command.New(command.Options{
		Notifier:  notes,
		Delayer:   command.InstantDelayer{},
		Clipboard: clip,
	})
	m := New(context.Background(), ctl)
	t.Cleanup(m.Close)
	return m, ctl, clip
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

// finish runs cmd and feeds the resulting commandDoneMsg back into m.
// Batched commands are searched in order, so timers after it never run.
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	done := findDone(t, cmd)
	if done == nil {
		t.Fatal("command produced no commandDoneMsg")
	}
	next, _ := m.Update(*done)
	return next.(Model)
}

func findDone(t *testing.T, cmd tea.Cmd) *commandDoneMsg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	type result struct{ msg tea.Msg }
	ch := make(chan result, 1)
	go func() { ch <- result{cmd()} }()
	var msg tea.Msg
	select {
	case r := <-ch:
		msg = r.msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
	}
	switch msg := msg.(type) {
	case commandDoneMsg:
		return &msg
	case tea.BatchMsg:
		for _, c := range msg {
			if d := findDone(t, c); d != nil {
				return d
			}
		}
	}
	return nil
}

func TestSession_StartsWithSeed(t *testing.T) {
	m, _, _ := newTestSession(t)
	if len(m.papers) != 1 {
		t.Fatalf("papers = %d, want 1", len(m.papers))
	}
	if !strings.Contains(m.View(), "Introduction to Machine Learning") {
		t.Error("view does not show the seed paper")
	}
}

func TestSession_UploadForm(t *testing.T) {
	m, ctl, _ := newTestSession(t)

	m, _ = press(t, m, "u")
	if m.mode != modeForm || m.form.kind != formUpload {
		t.Fatalf("mode = %v/%v, want upload form", m.mode, m.form.kind)
	}
	m = typeText(t, m, "Graph Theory")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "Ada Byron")
	m, _ = press(t, m, "tab", "tab", "tab")
	m = typeText(t, m, "/home/ada/papers/graph.pdf")

	m, cmd := press(t, m, "ctrl+s")
	m = finish(t, m, cmd)

	if m.mode != modeBrowse {
		t.Errorf("form still open after successful upload")
	}
	papers := ctl.Papers()
	if len(papers) != 2 {
		t.Fatalf("store has %d papers, want 2", len(papers))
	}
	if papers[1].FileName != "graph.pdf" {
		t.Errorf("FileName = %q, want %q", papers[1].FileName, "graph.pdf")
	}
	if len(m.papers) != 2 {
		t.Errorf("view not refreshed: %d papers", len(m.papers))
	}
}

func TestSession_FormRequiresTitle(t *testing.T) {
	m, _, _ := newTestSession(t)

	m, _ = press(t, m, "u")
	m, cmd := press(t, m, "ctrl+s")
	if cmd != nil {
		t.Error("empty form submitted a command")
	}
	if m.form.err == nil || !strings.Contains(m.form.err.Error(), "Title") {
		t.Errorf("form err = %v, want Title is required", m.form.err)
	}
}

func TestSession_UploadWithoutFileShowsError(t *testing.T) {
	m, ctl, _ := newTestSession(t)

	m, _ = press(t, m, "u")
	m = typeText(t, m, "No File")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "Someone")
	m, cmd := press(t, m, "ctrl+s")
	m = finish(t, m, cmd)

	if m.mode != modeForm {
		t.Error("form closed after a failed upload")
	}
	if ctl.Notifier().Active()[0].Kind != notify.Error {
		t.Error("expected an error toast")
	}
	if !strings.Contains(m.View(), "Please choose a file to upload") {
		t.Error("error toast not rendered")
	}
}

func TestSession_SearchFilters(t *testing.T) {
	m, ctl, _ := newTestSession(t)
	if _, err := ctl.Upload(context.Background(), command.UploadInput{Title: "Graph Theory", Author: "Ada", FileName: "g.pdf"}); err != nil {
		t.Fatal(err)
	}

	m, _ = press(t, m, "/")
	if m.mode != modeSearch {
		t.Fatal("search mode not entered")
	}
	m = typeText(t, m, "GRAPH")
	if len(m.papers) != 1 || m.papers[0].Title != "Graph Theory" {
		t.Errorf("search result = %v", m.papers)
	}
	m, _ = press(t, m, "esc")
	if len(m.papers) != 2 {
		t.Errorf("esc did not clear search: %d papers", len(m.papers))
	}
}

func TestSession_SortCycles(t *testing.T) {
	m, _, _ := newTestSession(t)
	want := []catalog.SortKey{catalog.SortDate, catalog.SortTitle, catalog.SortAuthor, ""}
	for _, k := range want {
		m, _ = press(t, m, "s")
		if m.sortKey != k {
			t.Errorf("sortKey = %q, want %q", m.sortKey, k)
		}
	}
}

func TestSession_DeleteDeclined(t *testing.T) {
	m, ctl, _ := newTestSession(t)

	m, _ = press(t, m, "d")
	if m.mode != modeConfirmDelete || m.deleteID != 1 {
		t.Fatalf("confirm not shown: mode=%v id=%d", m.mode, m.deleteID)
	}
	m, cmd := press(t, m, "n")
	if cmd != nil {
		t.Error("declined delete ran a command")
	}
	if m.mode != modeBrowse || len(ctl.Papers()) != 1 {
		t.Error("declined delete changed state")
	}
}

func TestSession_DeleteConfirmed(t *testing.T) {
	m, ctl, _ := newTestSession(t)

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "y")
	m = finish(t, m, cmd)

	if len(ctl.Papers()) != 0 || len(m.papers) != 0 {
		t.Error("paper not deleted")
	}
	if !strings.Contains(m.View(), "No papers found") {
		t.Error("empty view missing")
	}
}

func TestSession_EditPrefills(t *testing.T) {
	m, ctl, _ := newTestSession(t)

	m, _ = press(t, m, "e")
	if m.mode != modeForm || m.form.kind != formEdit {
		t.Fatal("edit form not opened")
	}
	if got := m.form.value(1); got != "John Doe" {
		t.Errorf("author prefill = %q, want %q", got, "John Doe")
	}
	m = typeText(t, m, " Jr")
	m, cmd := press(t, m, "ctrl+s")
	m = finish(t, m, cmd)

	p, _ := ctl.OpenEdit(1)
	if p.Title != "Introduction to Machine Learning Jr" {
		t.Errorf("Title = %q", p.Title)
	}
	if m.mode != modeBrowse {
		t.Error("edit form still open")
	}
}

func TestSession_Share(t *testing.T) {
	m, _, clip := newTestSession(t)

	m, cmd := press(t, m, "c")
	finish(t, m, cmd)

	if clip.Last() != "https://raddaran-paper.com/share/1" {
		t.Errorf("clipboard = %q", clip.Last())
	}
}

func TestSession_GenerateForm(t *testing.T) {
	m, ctl, _ := newTestSession(t)

	m, _ = press(t, m, "g")
	m = typeText(t, m, "Systems Survey")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "Grace")
	m, cmd := press(t, m, "ctrl+s")
	finish(t, m, cmd)

	papers := ctl.Papers()
	if len(papers) != 2 || !papers[1].HasTemplate() {
		t.Fatalf("generated paper missing: %+v", papers)
	}
	if papers[1].Template.Kind != "research" {
		t.Errorf("default template = %q, want research", papers[1].Template.Kind)
	}
	if papers[1].FileName != "systems_survey.pdf" {
		t.Errorf("FileName = %q", papers[1].FileName)
	}
}

func TestSession_DetailView(t *testing.T) {
	m, _, _ := newTestSession(t)

	m, _ = press(t, m, "enter")
	if m.mode != modeDetail {
		t.Fatal("detail not opened")
	}
	if !strings.Contains(m.View(), "intro_to_ml.pdf") {
		t.Error("detail view lacks file name")
	}
	m, _ = press(t, m, "esc")
	if m.mode != modeBrowse {
		t.Error("esc did not leave detail")
	}
}

func TestNextSortKey_Unknown(t *testing.T) {
	if got := nextSortKey("rating"); got != "" {
		t.Errorf("nextSortKey(rating) = %q, want store order", got)
	}
}
