package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Captain-Vikram/To-Do-List/store"
)

// TerminalAppearance reports the colour-scheme preference of the terminal.
// Mode "dark" or "light" pins the answer; anything else asks the terminal
// for its background colour.
type TerminalAppearance struct {
	Mode string
}

// PrefersDark implements store.AppearanceDetector.
func (a TerminalAppearance) PrefersDark() bool {
	switch strings.ToLower(a.Mode) {
	case "dark":
		return true
	case "light":
		return false
	}
	if !IsInteractive() {
		return false
	}
	return lipgloss.HasDarkBackground()
}

var _ store.AppearanceDetector = TerminalAppearance{}

// IsInteractive checks if stdout is a terminal.
// This is useful to avoid querying the terminal when piping output.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
