package styles

import (
	"github.com/allbin/serialmon/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Menu styles
	MenuItemStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext1).
			Padding(0, 2)

	MenuSelectedStyle = lipgloss.NewStyle().
				Foreground(colors.Base).
				Background(colors.Mauve).
				Bold(true).
				Padding(0, 2)

	MenuHintStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0).
			Padding(0, 2)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(0, 1)

	// Status styles
	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(colors.Teal)

	StatusErrorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colors.Red)

	TableBaseStyle = lipgloss.NewStyle().
			BorderForeground(colors.Surface2).
			Align(lipgloss.Left)
)
