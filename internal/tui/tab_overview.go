package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/tui/components"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.dash
	var b strings.Builder

	headline := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Background).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center)
	b.WriteString(headline.Render(dashboard.Headline))
	b.WriteString("\n")

	// Row 1: headline metrics
	metrics := make([]components.Metric, len(d.Metrics))
	for i, m := range d.Metrics {
		metrics[i] = components.Metric{Label: m.Label, Value: m.Value, Help: m.Help}
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Row 2: issuance trend + dataset card
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	values := make([]float64, len(d.ByDate))
	for i, day := range d.ByDate {
		values[i] = float64(day.Count)
	}
	trendTitle := "Loans Issued"
	if n := len(d.ByDate); n > 0 {
		trendTitle = fmt.Sprintf("Loans Issued (%s to %s)",
			cli.FormatDate(d.ByDate[0].Date), cli.FormatDate(d.ByDate[n-1].Date))
	}
	trendCard := components.ContentCard(trendTitle,
		components.Sparkline(sparkValues(values, components.CardInnerWidth(halves[0])), t.Blue),
		halves[0])

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
	}

	var info strings.Builder
	info.WriteString(row("Dataset", truncStr(a.datasetPath, components.CardInnerWidth(halves[1])-12)))
	if a.result != nil {
		info.WriteString("\n" + row(model.GoodLoan, cli.FormatCount(a.result.GoodLoans)))
		info.WriteString("\n" + row(model.BadLoan, cli.FormatCount(a.result.BadLoans)))
		if a.result.Other > 0 {
			info.WriteString("\n" + row("Other", cli.FormatCount(a.result.Other)))
		}
	}
	dataCard := components.ContentCard("Dataset", info.String(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(trendCard)
		b.WriteString("\n")
		b.WriteString(dataCard)
	} else {
		b.WriteString(components.CardRow([]string{trendCard, dataCard}))
	}
	b.WriteString("\n")

	// Row 3: sidebar features
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	var feat strings.Builder
	for i, f := range dashboard.Features {
		if i > 0 {
			feat.WriteString("\n")
		}
		feat.WriteString(keyStyle.Render(f.Name) + labelStyle.Render(": "+f.Description))
	}
	b.WriteString(components.ContentCard(dashboard.SidebarHeader, feat.String(), cw))

	return b.String()
}

// sparkValues fits a series into width cells.
func sparkValues(values []float64, width int) []float64 {
	v, _ := components.Downsample(values, nil, width)
	return v
}
