package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles table header cells.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	// TitleStyle styles the heading printed above a table.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Underline(true)

	ComponentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	PathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	MutedStyle     = lipgloss.NewStyle().Faint(true)
	WarnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"added":     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"installed": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"present":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"ok":        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Active states
		"adding":     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"installing": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Skipped / warning
		"skipped": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"missing": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		// Error
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
