package tui

import (
	bubbletable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette, in ANSI 256 codes.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("229")
	ColorActiveBg  = lipgloss.Color("57")
	ColorError     = lipgloss.Color("196")
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).MarginBottom(1)

	controlStyle  = lipgloss.NewStyle().Foreground(ColorValue).Padding(0, 1)
	disabledStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	activeStyle   = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Background(ColorActiveBg).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(ColorLabel)
	errorStyle  = lipgloss.NewStyle().Foreground(ColorError)
)

// tableStyles draws the header with a bottom border and leaves rows plain;
// the table is display-only so no row is highlighted.
func tableStyles() bubbletable.Styles {
	s := bubbletable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Foreground(ColorHeader).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	return s
}
