package ui

import "github.com/charmbracelet/lipgloss"

var (
	leafGreen = lipgloss.Color("#5FAF5F")
	moss      = lipgloss.Color("#3A6B35")
	soil      = lipgloss.Color("#8B5A2B")
	sun       = lipgloss.Color("#FFD700")
	clay      = lipgloss.Color("#D75F5F")
	dim       = lipgloss.Color("240")
	white     = lipgloss.Color("#E0E0E0")

	titleStyle = lipgloss.NewStyle().
			Foreground(leafGreen).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(soil).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(leafGreen).
			Bold(true)

	dueStyle = lipgloss.NewStyle().
			Foreground(sun).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(dim)

	warningStyle = lipgloss.NewStyle().
			Foreground(sun).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(sun).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(clay).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(moss).
			Foreground(white).
			Padding(0, 1)

	statusErrStyle = lipgloss.NewStyle().
			Background(clay).
			Foreground(white).
			Bold(true).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(moss).
			Padding(0, 1)

	confirmStyle = lipgloss.NewStyle().
			Foreground(sun).
			Bold(true)

	focusedStyle = lipgloss.NewStyle().Foreground(leafGreen)
	blurredStyle = mutedStyle
	noStyle      = lipgloss.NewStyle()
)
