package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// IsRichTerminal reports whether stdout takes styled, multi-line output.
func IsRichTerminal() bool {
	return IsTTY() && os.Getenv("TERM") != "dumb"
}

// InitColor turns colored output off for --no-color, pipes and dumb terminals.
func InitColor(noColor bool) {
	if noColor || !IsRichTerminal() {
		color.NoColor = true
	}
}
