package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/command"
	"github.com/blackwell-systems/paperctl/internal/notify"
	"github.com/blackwell-systems/paperctl/internal/render"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirmDelete
	modeDetail
)

// sortCycle is the order the sort key steps through; "" is store order.
var sortCycle = append([]catalog.SortKey{""}, catalog.SortKeys...)

// commandDoneMsg reports a finished controller command.
type commandDoneMsg struct {
	name string
	err  error
}

// notifyMsg carries a toast event; ok is false once the notifier closed.
type notifyMsg struct {
	event notify.Event
	ok    bool
}

// Model is the interactive catalog session.
type Model struct {
	ctl    *command.Controller
	ctx    context.Context
	events <-chan notify.Event

	keys    SessionKeys
	help    help.Model
	spinner spinner.Model
	search  textinput.Model
	detail  viewport.Model
	form    formModel

	mode      mode
	papers    []catalog.Paper
	cursor    int
	sortKey   catalog.SortKey
	deleteID  int
	toasts    []notify.Notification
	activeCmd string
	width     int
	height    int
}

// New creates a session bound to ctl. Commands run with ctx.
func New(ctx context.Context, ctl *command.Controller) Model {
	search := textinput.New()
	search.Placeholder = "title, author or description"
	search.Prompt = "/ "
	search.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleHighlight

	m := Model{
		ctl:     ctl,
		ctx:     ctx,
		events:  ctl.Notifier().Subscribe(),
		keys:    NewSessionKeys(),
		help:    help.New(),
		spinner: sp,
		search:  search,
		detail:  viewport.New(80, 20),
		width:   80,
		height:  24,
	}
	m.refresh()
	return m
}

// Init starts listening for toasts.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(ch <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return notifyMsg{event: ev, ok: ok}
	}
}

// refresh recomputes the visible papers; this is the re-render step after
// every command.
func (m *Model) refresh() {
	m.papers = m.ctl.View(m.search.Value(), m.sortKey)
	if m.cursor >= len(m.papers) {
		m.cursor = len(m.papers) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.toasts = m.ctl.Notifier().Active()
}

func (m Model) selected() (catalog.Paper, bool) {
	if len(m.papers) == 0 {
		return catalog.Paper{}, false
	}
	return m.papers[m.cursor], true
}

// run executes op off the update loop and reports back with commandDoneMsg.
func (m Model) run(name string, op func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg { return commandDoneMsg{name: name, err: op(ctx)} },
		m.spinner.Tick,
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 4
		return m, nil

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case notifyMsg:
		if !msg.ok {
			return m, nil
		}
		m.toasts = m.ctl.Notifier().Active()
		return m, waitForEvent(m.events)

	case commandDoneMsg:
		m.refresh()
		if msg.err == nil && m.mode == modeForm && formCommand(m.form.kind) == msg.name {
			m.mode = modeBrowse
		}
		return m, nil

	case spinner.TickMsg:
		if len(m.ctl.BusyControls()) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeDetail:
		return m.updateDetail(msg)
	}
	return m.updateBrowse(msg)
}

func formCommand(k formKind) string {
	switch k {
	case formUpload:
		return "upload"
	case formEdit:
		return "edit"
	default:
		return "generate"
	}
}

func formControl(k formKind) string {
	switch k {
	case formUpload:
		return command.ControlUpload
	case formEdit:
		return command.ControlEdit
	default:
		return command.ControlGenerate
	}
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	p, hasPaper := m.selected()

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.papers)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(km, m.keys.Search):
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(km, m.keys.Sort):
		m.sortKey = nextSortKey(m.sortKey)
		m.refresh()
		m.activeCmd = "s"
		return m, HighlightCmd()

	case key.Matches(km, m.keys.Upload):
		m.form = newUploadForm()
		m.mode = modeForm
		return m, textinput.Blink

	case key.Matches(km, m.keys.Generate):
		var kinds []string
		for _, t := range m.ctl.Templates().All() {
			kinds = append(kinds, t.Kind)
		}
		m.form = newGenerateForm(kinds)
		m.mode = modeForm
		return m, textinput.Blink

	case key.Matches(km, m.keys.Edit) && hasPaper:
		fresh, err := m.ctl.OpenEdit(p.ID)
		if err != nil {
			m.refresh()
			return m, nil
		}
		m.form = newEditForm(fresh)
		m.mode = modeForm
		return m, textinput.Blink

	case key.Matches(km, m.keys.Delete) && hasPaper:
		if m.ctl.Busy(command.DeleteControl(p.ID)) {
			return m, nil
		}
		m.deleteID = p.ID
		m.mode = modeConfirmDelete
		return m, nil

	case key.Matches(km, m.keys.Download) && hasPaper:
		if m.ctl.Busy(command.DownloadControl(p.ID)) {
			return m, nil
		}
		id := p.ID
		m.activeCmd = "w"
		return m, tea.Batch(m.run("download", func(ctx context.Context) error {
			_, err := m.ctl.Download(ctx, id)
			return err
		}), HighlightCmd())

	case key.Matches(km, m.keys.Share) && hasPaper:
		if m.ctl.Busy(command.ShareControl(p.ID)) {
			return m, nil
		}
		id := p.ID
		m.activeCmd = "c"
		return m, tea.Batch(m.run("share", func(ctx context.Context) error {
			_, err := m.ctl.Share(ctx, id)
			return err
		}), HighlightCmd())

	case key.Matches(km, m.keys.Detail) && hasPaper:
		out, err := render.Detail(p, m.width)
		if err != nil {
			out = render.Markdown(p)
		}
		m.detail.SetContent(out)
		m.detail.GotoTop()
		m.mode = modeDetail
		return m, nil
	}
	return m, nil
}

func nextSortKey(k catalog.SortKey) catalog.SortKey {
	for i, s := range sortCycle {
		if s == k {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			m.search.Blur()
			m.mode = modeBrowse
			return m, nil
		case "esc":
			m.search.SetValue("")
			m.search.Blur()
			m.mode = modeBrowse
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	kind := m.form.kind
	busy := m.ctl.Busy(formControl(kind))

	f, action, cmd := m.form.update(msg)
	m.form = f
	switch action {
	case formCancel:
		m.mode = modeBrowse
		return m, nil
	case formSubmit:
		if busy {
			return m, nil
		}
		return m, m.submitForm()
	}
	return m, cmd
}

func (m Model) submitForm() tea.Cmd {
	f := m.form
	switch f.kind {
	case formUpload:
		in := f.uploadInput()
		return m.run("upload", func(ctx context.Context) error {
			_, err := m.ctl.Upload(ctx, in)
			return err
		})
	case formEdit:
		in := f.editInput()
		return m.run("edit", func(ctx context.Context) error {
			_, err := m.ctl.Edit(ctx, in)
			return err
		})
	default:
		in := f.generateInput()
		return m.run("generate", func(ctx context.Context) error {
			_, err := m.ctl.Generate(ctx, in)
			return err
		})
	}
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	var answer bool
	switch km.String() {
	case "y", "Y", "enter":
		answer = true
	case "n", "N", "esc", "q":
		answer = false
	default:
		return m, nil
	}
	id := m.deleteID
	m.mode = modeBrowse
	if !answer {
		return m, nil
	}
	return m, m.run("delete", func(ctx context.Context) error {
		_, err := m.ctl.Delete(ctx, id, func(int) bool { return answer })
		return err
	})
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q", "enter":
			m.mode = modeBrowse
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// View renders the session.
func (m Model) View() string {
	if m.mode == modeDetail {
		return m.detail.View() + "\n" + StyleHelp.Render("  ↑/↓ scroll • esc back")
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view(m.ctl.Busy(formControl(m.form.kind)), m.spinner.View()))
	default:
		b.WriteString(m.cardWindow())
	}
	b.WriteString("\n")

	if busy := m.ctl.BusyControls(); len(busy) > 0 {
		b.WriteString(StyleHighlight.Render(m.spinner.View() + " " + strings.Join(busy, ", ")))
		b.WriteString("\n")
	}
	if m.mode == modeConfirmDelete {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("Are you sure you want to delete paper #%d? ", m.deleteID)))
		b.WriteString(StyleHelp.Render("y/N"))
		b.WriteString("\n")
	}
	b.WriteString(renderToasts(m.toasts))
	if m.help.ShowAll {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}
	b.WriteString(RenderFooterBar(ShortcutsFor(m.keys.ShortHelp()), m.activeCmd))
	return b.String()
}

func (m Model) header() string {
	title := StyleHeader.Render("paperctl")
	count := StyleHelp.Render(fmt.Sprintf("%d papers", len(m.papers)))
	sortLabel := "order added"
	if m.sortKey != "" {
		sortLabel = string(m.sortKey)
	}
	meta := StyleHelp.Render("sort: " + sortLabel)

	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", count, "  ", meta)
	if m.mode == modeSearch || m.search.Value() != "" {
		line += "\n" + m.search.View()
	}
	return line
}

// cardWindow renders as many cards as fit, keeping the cursor visible.
func (m Model) cardWindow() string {
	cards := render.Cards(m.papers)
	if len(cards) == 0 {
		return render.Terminal(nil, m.width, -1)
	}
	width := m.width - 2
	if width > 100 {
		width = 100
	}
	budget := m.height - 8

	var parts []string
	used := 0
	for i := m.cursor; i < len(cards); i++ {
		card := render.TerminalCard(cards[i], width, i == m.cursor)
		h := lipgloss.Height(card)
		if used+h > budget && len(parts) > 0 {
			break
		}
		parts = append(parts, card)
		used += h
	}
	if m.cursor > 0 {
		parts = append([]string{StyleHelp.Render(fmt.Sprintf("  ↑ %d more", m.cursor))}, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderToasts(toasts []notify.Notification) string {
	var b strings.Builder
	for _, t := range toasts {
		b.WriteString(renderToast(t))
		b.WriteString("\n")
	}
	return b.String()
}

// Close releases the toast subscription.
func (m Model) Close() {
	m.ctl.Notifier().Unsubscribe(m.events)
}

// Run starts the session in the alternate screen and blocks until quit.
func Run(ctx context.Context, ctl *command.Controller) error {
	m := New(ctx, ctl)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running session: %w", err)
	}
	return nil
}
