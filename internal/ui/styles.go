package ui

import "github.com/charmbracelet/lipgloss"

var (
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	CallStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	ResultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	FailureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	TextStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("14"))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	UsageStyle = lipgloss.NewStyle().
			Faint(true)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)
