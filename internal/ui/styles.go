package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	Primary = lipgloss.Color("#7C3AED")

	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorError   = lipgloss.Color("#EF4444")
	ColorInfo    = lipgloss.Color("#06B6D4")
	ColorMuted   = lipgloss.Color("#6B7280")

	Text = lipgloss.Color("#F9FAFB")
)

var (
	SuccessBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000")).
			Background(ColorSuccess).
			Padding(0, 1).
			Bold(true)

	WarningBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000")).
			Background(ColorWarning).
			Padding(0, 1).
			Bold(true)

	ErrorBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(ColorError).
			Padding(0, 1).
			Bold(true)

	DirStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// DisableColor strips styling from all output, for --no-color.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
