package formatter

import (
	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders text in the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// Bold renders text in the bold style.
func Bold(s string) string { return StyleBold.Render(s) }

// StatusStyle returns the style for a task status badge.
func StatusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.TaskCompleted:
		return StyleGreen
	case domain.TaskInProgress:
		return StyleYellow
	case domain.TaskPending:
		return StyleBlue
	default:
		return StyleDim
	}
}

// LevelBadge renders an objective level as a colored badge.
func LevelBadge(l domain.Level) string {
	switch l {
	case domain.LevelCompany:
		return StylePurple.Render("[Company]")
	case domain.LevelDepartment:
		return StyleBlue.Render("[Department]")
	case domain.LevelTeams:
		return StyleYellow.Render("[Team]")
	case domain.LevelIndividuals:
		return StyleGreen.Render("[Individual]")
	default:
		return StyleDim.Render("[?]")
	}
}
