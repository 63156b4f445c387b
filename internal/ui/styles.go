package ui

import "github.com/charmbracelet/lipgloss"

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	userMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10B981")).
				Bold(true)

	msgBodyStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1).
			MarginLeft(2)

	cardSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F59E0B")).
				Padding(0, 1).
				MarginLeft(2)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F3F4F6"))

	cardErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	cardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	mockBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Italic(true)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("#374151"))
)

func changeStyle(positive bool) lipgloss.Style {
	if positive {
		return positiveStyle
	}
	return negativeStyle
}
