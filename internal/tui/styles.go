package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title     lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Failed    lipgloss.Style
	Notice    lipgloss.Style
	Help      lipgloss.Style
	Spinner   lipgloss.Style
	Input     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7F1734")).Padding(0, 1),
		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#006140")).MarginTop(1),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7F1734")).MarginTop(1),
		Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Notice:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7F1734")),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#006140")).
			Padding(0, 1),
	}
}
