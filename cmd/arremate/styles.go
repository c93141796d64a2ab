package main

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette
const (
	colorGreen   = "42"
	colorMagenta = "170"
	colorCyan    = "37"
	colorRed     = "196"
	colorYellow  = "220"
	colorGray    = "245"
)

type styles struct {
	Header    lipgloss.Style
	TextMatch lipgloss.Style
	AIMatch   lipgloss.Style
	Separator lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Label     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:    lipgloss.NewStyle().Bold(true),
		TextMatch: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		AIMatch:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMagenta)),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

func plainStyles() styles {
	return styles{
		Header:    lipgloss.NewStyle(),
		TextMatch: lipgloss.NewStyle(),
		AIMatch:   lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
		Warning:   lipgloss.NewStyle(),
		Success:   lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle(),
	}
}
