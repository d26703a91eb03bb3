package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/paperctl/internal/notify"
)

// Palette shared with the fatih/color output of the plain CLI.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	ColorWhite  = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}
	ColorGray   = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
)

var (
	StyleHighlight = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleError     = lipgloss.NewStyle().Foreground(ColorRed)
	StyleWarning   = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleHelp      = lipgloss.NewStyle().Foreground(ColorGray)
	StyleHeader    = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)

// toastLook is the icon and style for each toast kind.
var toastLook = map[notify.Kind]struct {
	icon  string
	style lipgloss.Style
}{
	notify.Success: {"✓", lipgloss.NewStyle().Foreground(ColorGreen)},
	notify.Error:   {"✗", StyleError},
	notify.Warning: {"!", StyleWarning},
}

// renderToast draws one toast line. Unknown kinds render as errors.
func renderToast(n notify.Notification) string {
	look, ok := toastLook[n.Kind]
	if !ok {
		look = toastLook[notify.Error]
	}
	return look.style.Render(look.icon + " " + n.Message)
}
