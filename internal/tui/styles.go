package tui

import "github.com/charmbracelet/lipgloss"

const (
	ColorBrown  = "#4B3023" // buttons and headlines
	ColorWhite  = "#FFFFFF"
	ColorAccent = "86"
	ColorMuted  = "241"
	ColorDanger = "196"
)

// Styles contains the style definitions for both screens.
var Styles = struct {
	Title    lipgloss.Style
	Progress lipgloss.Style
	Card     lipgloss.Style
	Label    lipgloss.Style
	Button   lipgloss.Style
	Headline lipgloss.Style
	Hint     lipgloss.Style
	ToastOK  lipgloss.Style
	ToastBad lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Progress: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBrown)).
		Padding(1, 2).
		Width(56),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(ColorBrown)).
		Padding(0, 3),
	Headline: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorBrown)).
		Background(lipgloss.Color(ColorWhite)).
		Padding(0, 1),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	ToastOK: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	ToastBad: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
}
