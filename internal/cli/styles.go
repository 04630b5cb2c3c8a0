package cli

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleAssistant = lipgloss.NewStyle().Foreground(colorBlue)
	styleNotice    = lipgloss.NewStyle().Foreground(colorYellow)
	styleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	styleError     = lipgloss.NewStyle().Foreground(colorRed)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader    = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)
