package tui

import (
	"strings"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/tui/components"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderConditionTab(cw int) string {
	t := theme.Active
	d := a.dash

	section := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background).Bold(true)

	var b strings.Builder
	b.WriteString(section.Render(dashboard.SectionCondition))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	// Portion by condition
	condPanel, _ := dashboard.LookupPanel(dashboard.PanelCondition)
	labelW := 0
	for _, s := range d.Conditions {
		labelW = max(labelW, lipgloss.Width(s.Condition))
	}
	inner := components.CardInnerWidth(halves[0])
	barW := max(inner-labelW-18, 8)
	shares := make([]string, len(d.Conditions))
	for i, s := range d.Conditions {
		shares[i] = components.ShareBar(s.Condition, s.Percent, cli.FormatCount(s.Count), labelW, barW)
	}
	shareCard := components.ContentCard(condPanel.Title, strings.Join(shares, "\n"), halves[0])

	// Grade distribution
	gradePanel, _ := dashboard.LookupPanel(dashboard.PanelGrade)
	rows := make([]components.HBar, len(d.Grades))
	for i, g := range d.Grades {
		rows[i] = components.HBar{Label: g.Label, Value: float64(g.Count), Text: cli.FormatCount(g.Count)}
	}
	gradeCard := components.ContentCard(gradePanel.Title,
		components.HBarChart(rows, t.Orange, components.CardInnerWidth(halves[1])),
		halves[1])

	if a.isCompactLayout() {
		b.WriteString(shareCard)
		b.WriteString("\n")
		b.WriteString(gradeCard)
	} else {
		b.WriteString(components.CardRow([]string{shareCard, gradeCard}))
	}
	return b.String()
}
