package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	accent = lipgloss.Color("#EF4444") // red-500
	muted  = lipgloss.Color("#6B7280") // gray-500
	warn   = lipgloss.Color("#F59E0B") // amber-500
	fg     = lipgloss.Color("#E5E7EB") // gray-200
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1)
	itemStyle     = lipgloss.NewStyle().Foreground(fg).PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			PaddingLeft(1)
	faintStyle   = lipgloss.NewStyle().Foreground(muted)
	warnStyle    = lipgloss.NewStyle().Foreground(warn).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(accent)
	labelStyle   = lipgloss.NewStyle().Foreground(muted).Width(8)
	helpStyle    = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
)
