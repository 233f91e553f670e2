package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/GriffinCanCode/termquest/internal/render"
)

// Color palette, shared with the browser terminal's classes.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
	ColorText      = lipgloss.Color("252")
)

// Styles for the terminal screen.
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	EditorTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(ColorSecondary).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)

// classStyles maps output span classes onto terminal styles.
var classStyles = map[string]lipgloss.Style{
	render.ClassDir:       lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
	render.ClassFile:      lipgloss.NewStyle().Foreground(ColorText),
	render.ClassError:     ErrorStyle,
	render.ClassHighlight: lipgloss.NewStyle().Foreground(ColorError).Bold(true),
	render.ClassPath:      lipgloss.NewStyle().Foreground(ColorPrimary),
	render.ClassMuted:     MutedStyle,
}
