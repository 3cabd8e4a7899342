package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the form uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorError   = colorRed
	colorWarning = colorYellow
	colorSuccess = colorGreen
	colorBorder  = colorSurface2
	colorMuted   = colorOverlay1
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	inputFocusStyle = inputStyle.BorderForeground(colorFocus)
	inputErrStyle   = inputStyle.BorderForeground(colorError)

	errTextStyle  = lipgloss.NewStyle().Foreground(colorError)
	hintTextStyle = lipgloss.NewStyle().Foreground(colorWarning).Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Bold(true).
			Padding(0, 3)
	buttonFocusStyle = buttonStyle.Foreground(colorCrust).Background(colorAccent)

	alertStyle = lipgloss.NewStyle().
			Foreground(colorCrust).
			Background(colorError).
			Padding(0, 2).
			Align(lipgloss.Center)
	alertTitleStyle = lipgloss.NewStyle().Bold(true)

	footerStyle  = lipgloss.NewStyle().Background(colorMantle).Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorMantle)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)
