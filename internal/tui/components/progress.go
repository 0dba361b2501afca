package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar followed by its percentage.
// pct is a 0-1 fraction.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp01(pct)
	filled := min(max(int(pct*float64(width)), 0), width)

	barColor := t.Cyan
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ConditionColor returns the active theme's color for a loan condition label.
func ConditionColor(condition string) lipgloss.Color {
	return theme.Active.Condition(condition)
}

// ShareBar renders a labeled portion bar: label, bar, percent and count.
// pct is 0-100.
func ShareBar(label string, pct float64, count string, labelW, barWidth int) string {
	t := theme.Active
	frac := clamp01(pct / 100)
	color := ConditionColor(label)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(frac) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct)) +
		spaceStyle.Render("  ") +
		countStyle.Render(count)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
