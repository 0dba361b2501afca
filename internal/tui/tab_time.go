package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/tui/components"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// panelTabs renders the sub-panel selector shown above tabbed charts.
func panelTabs(ids []dashboard.PanelID, active int) string {
	t := theme.Active
	on := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true).Underline(true)
	off := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	sep := lipgloss.NewStyle().Background(t.Background).Render("   ")

	parts := make([]string, 0, len(ids))
	for i, id := range ids {
		p, _ := dashboard.LookupPanel(id)
		label := fmt.Sprintf("%d %s", i+1, p.Tab)
		if i == active {
			parts = append(parts, on.Render(label))
		} else {
			parts = append(parts, off.Render(label))
		}
	}
	return strings.Join(parts, sep)
}

func (a App) renderTimeTab(cw, h int) string {
	t := theme.Active
	d := a.dash
	id := timePanels[a.timePanel]
	p, _ := dashboard.LookupPanel(id)

	var b strings.Builder
	b.WriteString(panelTabs(timePanels, a.timePanel))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	chartH := max(h-8, 6)
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var body string
	switch id {
	case dashboard.PanelIssued, dashboard.PanelAmount:
		values := make([]float64, len(d.ByDate))
		for i, day := range d.ByDate {
			if id == dashboard.PanelIssued {
				values[i] = float64(day.Count)
			} else {
				values[i] = day.Amount
			}
		}
		color := t.Blue
		if id == dashboard.PanelAmount {
			color = t.Green
		}
		body = axis.Render(p.YLabel) + "\n" +
			components.BarChart(values, chartDateLabels(d.ByDate), color, inner, chartH) + "\n" +
			axis.Render(p.XLabel)

	case dashboard.PanelWeekday:
		rows := make([]components.HBar, len(d.ByWeekday))
		for i, c := range d.ByWeekday {
			rows[i] = components.HBar{Label: c.Label, Value: float64(c.Count), Text: cli.FormatCount(c.Count)}
		}
		body = axis.Render(p.XLabel+" / "+p.YLabel) + "\n" +
			components.HBarChart(rows, t.Blue, inner)
	}

	b.WriteString(components.ContentCard(p.Title, body, cw))
	return b.String()
}
