package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))

	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F848E"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4B4B4B"))

	focusedButtonStyle = buttonStyle.
				Background(lipgloss.Color("#7D56F4"))

	successNoticeStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#98C379")).
				Foreground(lipgloss.Color("#98C379")).
				Padding(0, 1)

	errorNoticeStyle = successNoticeStyle.
				BorderForeground(lipgloss.Color("#E06C75")).
				Foreground(lipgloss.Color("#E06C75"))
)
