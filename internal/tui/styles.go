// Package tui provides the live terminal dashboard for httop.
//
// The TUI uses Bubble Tea for the application framework and Lipgloss for
// styling. It displays real-time request rates, status code breakdowns, and
// a per-path table sampled from the most recent events.
package tui

import "github.com/charmbracelet/lipgloss"

// Colors based on a modern dark theme
var (
	// Primary colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan

	// Status colors
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red
	colorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Neutral colors
	colorText      = lipgloss.Color("#E5E7EB") // Light gray
	colorTextMuted = lipgloss.Color("#9CA3AF") // Medium gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Bold(true).
			Padding(0, 1)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorBorder)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			MarginTop(1)
)

var (
	statusOK      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	statusWarning = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	statusError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	statusInfo    = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
)

// statusStyle picks a style by HTTP status class.
func statusStyle(code int) lipgloss.Style {
	switch {
	case code >= 500:
		return statusError
	case code >= 400:
		return statusWarning
	case code >= 300:
		return statusInfo
	default:
		return statusOK
	}
}
