package report

import "github.com/charmbracelet/lipgloss"

// ANSI palette indexes; lipgloss maps them down on limited terminals.
const (
	ansiRed    = lipgloss.Color("1")
	ansiGreen  = lipgloss.Color("2")
	ansiYellow = lipgloss.Color("3")
	ansiCyan   = lipgloss.Color("6")
	ansiGray   = lipgloss.Color("8")
)

var (
	styleSuccess  = lipgloss.NewStyle().Bold(true).Foreground(ansiGreen)
	styleWarning  = lipgloss.NewStyle().Bold(true).Foreground(ansiYellow)
	styleError    = lipgloss.NewStyle().Bold(true).Foreground(ansiRed)
	styleLocation = lipgloss.NewStyle().Bold(true).Foreground(ansiCyan)
	stylePlugin   = lipgloss.NewStyle().Foreground(ansiGray)
)

// paint renders text in style, or returns it untouched without colours.
func (r *Reporter) paint(style lipgloss.Style, text string) string {
	if !r.useColors {
		return text
	}
	return style.Render(text)
}
