package tui

import "github.com/charmbracelet/bubbles/key"

// SessionKeys are the bindings of the card list.
type SessionKeys struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Sort     key.Binding
	Upload   key.Binding
	Generate key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Download key.Binding
	Share    key.Binding
	Detail   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// NewSessionKeys creates the default bindings.
func NewSessionKeys() SessionKeys {
	return SessionKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Download: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "download"),
		),
		Share: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "share"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k SessionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Upload, k.Generate, k.Edit, k.Delete, k.Download, k.Share, k.Detail, k.Help, k.Quit}
}

// FullHelp returns every binding grouped for the expanded help view.
func (k SessionKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail},
		{k.Search, k.Sort},
		{k.Upload, k.Generate, k.Edit, k.Delete},
		{k.Download, k.Share, k.Help, k.Quit},
	}
}
