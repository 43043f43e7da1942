package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles used by menus and overlays.
type Theme struct {
	Title       lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	ItemLocked  lipgloss.Style
	Description lipgloss.Style
	Value       lipgloss.Style
	Controls    lipgloss.Style
	Error       lipgloss.Style
	Panel       lipgloss.Style
}

// DefaultTheme returns the default water-blue theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:       lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
