package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentPrimary   = lipgloss.Color("#50E3C2")
	accentSecondary = lipgloss.Color("#F6AE2D")
	focusColor      = lipgloss.Color("#D16BD6")
	submitColor     = lipgloss.Color("#7BD88F")
	filesColor      = lipgloss.Color("#5B8DEF")
	panelBorder     = lipgloss.Color("#44515A")
	mutedText       = lipgloss.Color("#8CA1AE")
	valueText       = lipgloss.Color("#E8F0F2")
	warningText     = lipgloss.Color("#FF6B6B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accentPrimary).
			Foreground(accentPrimary).
			Bold(true).
			Align(lipgloss.Center)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelBorder).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(accentPrimary).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(valueText).
			Bold(true)

	filesStyle = lipgloss.NewStyle().
			Foreground(mutedText)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(panelBorder).
			Bold(true).
			Align(lipgloss.Center)

	statStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(panelBorder).
			Foreground(accentSecondary).
			Bold(true).
			Align(lipgloss.Center)

	statusStyle = lipgloss.NewStyle().
			Foreground(accentSecondary).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(warningText).
			Bold(true)

	logStyle = lipgloss.NewStyle().
			Foreground(mutedText)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedText).
			Align(lipgloss.Center)
)

// renderPanel draws a bordered box whose outer width is width.
func renderPanel(title, body string, width int, border lipgloss.Color) string {
	style := panelStyle.
		BorderForeground(border).
		Width(maxInt(4, width-2))
	parts := make([]string, 0, 2)
	if strings.TrimSpace(title) != "" {
		parts = append(parts, panelTitleStyle.Render(title))
	}
	parts = append(parts, body)
	return style.Render(strings.Join(parts, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
