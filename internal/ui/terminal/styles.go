package terminal

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#E8BE42")

	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(accent).
			Padding(0, 1)
	timeStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	continuousStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	breakStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	stoppedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)
