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

func (a App) renderAnalysisTab(cw, h int) string {
	t := theme.Active
	d := a.dash

	section := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background).Bold(true)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)

	var b strings.Builder
	b.WriteString(section.Render(dashboard.SectionAnalysis+": "+a.condition) +
		hint.Render("  [s] "+dashboard.SelectLabel))
	b.WriteString("\n")
	b.WriteString(panelTabs(analysisPanels, a.analysisPanel))
	b.WriteString("\n")

	id := analysisPanels[a.analysisPanel]
	p, _ := dashboard.LookupPanel(id)
	inner := components.CardInnerWidth(cw)

	if !d.HasAnalysis() {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard(p.Title,
			muted.Render(fmt.Sprintf("No loans with condition %q.", a.condition)), cw))
		return b.String()
	}

	var body string
	switch id {
	case dashboard.PanelHistogram:
		body = histogramBody(d.Histogram, p, inner, max(h-8, 4))
	case dashboard.PanelBoxPlot:
		body = boxPlotBody(d.BoxPlot, p, inner)
	}
	b.WriteString(components.ContentCard(p.Title, body, cw))
	return b.String()
}

// histogramBody renders the loan-amount bins as stacked bars, merging
// adjacent bins when there are more than maxRows.
func histogramBody(hist model.Histogram, p dashboard.Panel, width, maxRows int) string {
	t := theme.Active
	bins := mergeBins(hist, maxRows)

	rows := make([]components.StackedRow, len(bins))
	for i, bin := range bins {
		segs := make([]float64, len(hist.Terms))
		for j, term := range hist.Terms {
			segs[j] = float64(bin.ByTerm[term])
		}
		rows[i] = components.StackedRow{
			Label:    fmt.Sprintf("%s-%s", cli.FormatCompact(bin.Lower), cli.FormatCompact(bin.Upper)),
			Segments: segs,
		}
	}

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return axis.Render(p.XLabel+" / "+p.YLabel+" by "+p.Legend) + "\n" +
		components.StackedHBarChart(rows, hist.Terms, width)
}

func mergeBins(hist model.Histogram, maxRows int) []model.HistogramBin {
	if maxRows < 1 || len(hist.Bins) <= maxRows {
		return hist.Bins
	}
	group := (len(hist.Bins) + maxRows - 1) / maxRows
	var out []model.HistogramBin
	for i := 0; i < len(hist.Bins); i += group {
		end := min(i+group, len(hist.Bins))
		merged := model.HistogramBin{
			Lower:  hist.Bins[i].Lower,
			Upper:  hist.Bins[end-1].Upper,
			ByTerm: make(map[string]int, len(hist.Terms)),
		}
		for _, bin := range hist.Bins[i:end] {
			for term, n := range bin.ByTerm {
				merged.ByTerm[term] += n
			}
		}
		out = append(out, merged)
	}
	return out
}

// boxPlotBody renders one box line per purpose and term on a shared scale.
func boxPlotBody(bp model.BoxPlot, p dashboard.Panel, width int) string {
	t := theme.Active
	if len(bp.Boxes) == 0 {
		return ""
	}

	lo, hi := bp.Boxes[0].Min, bp.Boxes[0].Max
	labelW := 0
	for _, box := range bp.Boxes {
		lo = min(lo, box.Min)
		hi = max(hi, box.Max)
		labelW = max(labelW, lipgloss.Width(box.Purpose)+lipgloss.Width(box.Term)+1)
	}

	termIdx := make(map[string]int, len(bp.Terms))
	for i, term := range bp.Terms {
		termIdx[term] = i
	}
	palette := t.SeriesColors()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	const medianW = 8
	lineW := max(width-labelW-medianW-2, 10)

	var b strings.Builder
	b.WriteString(axis.Render(p.XLabel + " / " + p.YLabel))
	b.WriteString("\n")
	for _, box := range bp.Boxes {
		label := truncStr(box.Purpose+" "+box.Term, labelW)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)))
		b.WriteString(blank.Render(" "))
		b.WriteString(components.BoxLine(components.Box{
			LowerWhisker: box.LowerWhisker,
			Q1:           box.Q1,
			Median:       box.Median,
			Q3:           box.Q3,
			UpperWhisker: box.UpperWhisker,
			Outliers:     box.Outliers,
		}, lo, hi, lineW, palette[termIdx[box.Term]%len(palette)]))
		b.WriteString(blank.Render(" "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", medianW, cli.FormatCompact(box.Median))))
		b.WriteString("\n")
	}

	// Scale line under the boxes
	scale := []rune(strings.Repeat(" ", lineW))
	loS, hiS := []rune(cli.FormatCompact(lo)), []rune(cli.FormatCompact(hi))
	copy(scale, loS)
	if len(hiS) < lineW-len(loS) {
		copy(scale[lineW-len(hiS):], hiS)
	}
	b.WriteString(blank.Render(strings.Repeat(" ", labelW+1)))
	b.WriteString(axis.Render(string(scale)))
	b.WriteString("\n")
	b.WriteString(components.Legend(bp.Terms))
	return b.String()
}
