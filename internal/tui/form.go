package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/command"
)

type formKind int

const (
	formUpload formKind = iota
	formEdit
	formGenerate
)

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

type formField struct {
	label       string
	placeholder string
	value       string
	charLimit   int
	required    bool
}

// formModel is one of the three paper forms embedded in the session.
type formModel struct {
	kind    formKind
	title   string
	paperID int
	inputs  []textinput.Model
	labels  []string
	req     []bool
	focused int
	err     error
}

var categoryHint = strings.Join(catalog.Categories, " | ")

func newForm(kind formKind, title string, fields []formField) formModel {
	const fieldWidth = 42
	m := formModel{kind: kind, title: title}
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.SetValue(f.value)
		in.CharLimit = f.charLimit
		in.Width = fieldWidth
		in.Prompt = "│ "
		if i == 0 {
			in.Focus()
		}
		m.inputs = append(m.inputs, in)
		m.labels = append(m.labels, f.label)
		m.req = append(m.req, f.required)
	}
	return m
}

func newUploadForm() formModel {
	return newForm(formUpload, "Upload Paper", []formField{
		{label: "Title", placeholder: "Paper title", charLimit: 200, required: true},
		{label: "Author", placeholder: "Author name", charLimit: 100, required: true},
		{label: "Category", placeholder: categoryHint, value: catalog.Categories[0], charLimit: 60, required: true},
		{label: "Abstract", placeholder: "Short description", charLimit: 500},
		{label: "File", placeholder: "path/to/paper.pdf", charLimit: 300},
	})
}

func newEditForm(p catalog.Paper) formModel {
	m := newForm(formEdit, "Edit Paper", []formField{
		{label: "Title", value: p.Title, charLimit: 200, required: true},
		{label: "Author", value: p.Author, charLimit: 100, required: true},
		{label: "Category", placeholder: categoryHint, value: p.Category, charLimit: 60, required: true},
		{label: "Abstract", value: p.Description, charLimit: 500},
	})
	m.paperID = p.ID
	return m
}

func newGenerateForm(kinds []string) formModel {
	def := ""
	if len(kinds) > 0 {
		def = kinds[0]
	}
	return newForm(formGenerate, "Generate Paper", []formField{
		{label: "Title", placeholder: "Paper title", charLimit: 200, required: true},
		{label: "Author", placeholder: "Author name", charLimit: 100, required: true},
		{label: "Category", placeholder: categoryHint, value: catalog.Categories[0], charLimit: 60, required: true},
		{label: "Template", placeholder: strings.Join(kinds, " | "), value: def, charLimit: 20, required: true},
		{label: "Abstract", placeholder: "Abstract text", charLimit: 1000},
	})
}

func (m formModel) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

func (m formModel) uploadInput() command.UploadInput {
	in := command.UploadInput{
		Title:       m.value(0),
		Author:      m.value(1),
		Category:    m.value(2),
		Description: m.value(3),
	}
	// Only the name of the chosen file is kept.
	if p := m.value(4); p != "" {
		in.FileName = filepath.Base(p)
	}
	return in
}

func (m formModel) editInput() command.EditInput {
	return command.EditInput{
		ID:          m.paperID,
		Title:       m.value(0),
		Author:      m.value(1),
		Category:    m.value(2),
		Description: m.value(3),
	}
}

func (m formModel) generateInput() command.GenerateInput {
	return command.GenerateInput{
		Title:    m.value(0),
		Author:   m.value(1),
		Category: m.value(2),
		Kind:     m.value(3),
		Abstract: m.value(4),
	}
}

// missing returns the label of the first empty required field.
func (m formModel) missing() string {
	for i, req := range m.req {
		if req && m.value(i) == "" {
			return m.labels[i]
		}
	}
	return ""
}

func (m formModel) update(msg tea.Msg) (formModel, formAction, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, formCancel, nil

		case "ctrl+s":
			return m.submit()

		case "enter":
			if m.focused == len(m.inputs)-1 {
				return m.submit()
			}
			return m.move(1)

		case "tab", "down":
			return m.move(1)

		case "shift+tab", "up":
			return m.move(-1)
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, formNone, tea.Batch(cmds...)
}

func (m formModel) submit() (formModel, formAction, tea.Cmd) {
	if label := m.missing(); label != "" {
		m.err = fmt.Errorf("%s is required", label)
		return m, formNone, nil
	}
	m.err = nil
	return m, formSubmit, nil
}

func (m formModel) move(delta int) (formModel, formAction, tea.Cmd) {
	m.focused = (m.focused + delta + len(m.inputs)) % len(m.inputs)
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focused {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, formNone, cmd
}

func (m formModel) view(busy bool, spin string) string {
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(10).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := formLabel.
		Foreground(ColorYellow).
		Bold(true)

	const w = 54
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder
	b.WriteString(StyleHeader.Render(m.title))
	if m.kind == formEdit {
		b.WriteString(StyleHelp.Render(fmt.Sprintf("  #%d", m.paperID)))
	}
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	for i, label := range m.labels {
		if i == m.focused {
			b.WriteString(formLabelActive.Render("› " + label))
		} else {
			b.WriteString(formLabel.Render(label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")
	if busy {
		b.WriteString(StyleHighlight.Render("  " + spin + " working..."))
	} else {
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Label: "tab/↑↓ navigate"},
			{Label: "ctrl+s submit"},
			{Label: "esc cancel"},
		}, ""))
	}
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return StyleBorder.Render(innerPadding.Render(b.String()))
}
