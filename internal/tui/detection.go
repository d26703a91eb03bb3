package tui

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/paperctl/internal/util"
)

// ShouldUseTUI returns true if the command should start the interactive session.
// It is enabled when:
// - stdout is a TTY (not piped or redirected)
// - --no-interactive is not set
// - --json is not set (scripting intent)
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}

	if noInteractive, _ := cmd.Flags().GetBool("no-interactive"); noInteractive {
		return false
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return false
	}

	return true
}
