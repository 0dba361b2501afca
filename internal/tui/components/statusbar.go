package components

import (
	"strings"

	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// selected condition in the middle, dataset info on the right.
func RenderStatusBar(width int, condition, dataInfo string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	accent := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)
	plain := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := plain.Render(" [?]help  [s]elect  [q]uit")
	mid := ""
	if condition != "" {
		mid = plain.Render("  ") + accent.Render(condition)
	}
	right := ""
	if dataInfo != "" {
		right = plain.Render(dataInfo + " ")
	}

	// Pad middle
	padding := max(width-lipgloss.Width(left)-lipgloss.Width(mid)-lipgloss.Width(right), 0)
	bar := left + mid + plain.Render(strings.Repeat(" ", padding)) + right

	return style.Render(bar)
}
