package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode is how the game talks to the user.
type Mode int

const (
	// ModeNonInteractive reads command lines and prints plain output.
	ModeNonInteractive Mode = iota
	// ModeInteractive runs the full-screen terminal.
	ModeInteractive
)

// DetectMode returns ModeNonInteractive when TERMQUEST_NON_INTERACTIVE=1,
// CI or NO_COLOR is set, or when stdin or stdout is not a terminal.
func DetectMode() Mode {
	if os.Getenv("TERMQUEST_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports whether DetectMode chose the full-screen terminal.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
