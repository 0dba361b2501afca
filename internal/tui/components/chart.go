package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Downsample picks at most n evenly spaced entries of values (and labels,
// when they line up), always keeping the first and last.
func Downsample(values []float64, labels []string, n int) ([]float64, []string) {
	if n < 2 || len(values) <= n {
		return values, labels
	}
	outV := make([]float64, n)
	var outL []string
	if len(labels) == len(values) {
		outL = make([]string, n)
	}
	for i := range outV {
		src := i * (len(values) - 1) / (n - 1)
		outV[i] = values[src]
		if outL != nil {
			outL[i] = labels[src]
		}
	}
	return outV, outL
}

// BarChart renders a vertical bar chart with a ticked y axis and sparse
// x labels. Falls back to a sparkline when the area is too small.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	step := chartTickStep(peak)
	for int(math.Ceil(peak/step)) > max(height/2, 2) {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	intervals := max(int(math.Round(ceiling/step)), 1)
	rowsPerTick := max(height/intervals, 2)
	chartH := rowsPerTick * intervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	ticks := make(map[int]string, intervals)
	for i := 1; i <= intervals; i++ {
		ticks[i*rowsPerTick] = formatChartLabel(step * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)

	// Bars are at least 2 cells wide with a 1 cell gap; sample when they
	// would not fit.
	if len(values) > 1 && (chartW-(len(values)-1))/len(values) < 2 {
		values, labels = Downsample(values, labels, max((chartW+1)/3, 2))
	}
	n := len(values)
	gap := 1
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		gap = 0
	}
	barW = min(max(barW, 2), 6)
	axisLen := n*barW + max(0, n-1)*gap

	eighths := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		barColor := t.Accent
		switch pct := float64(row) / float64(chartH); {
		case pct > 0.8:
			barColor = t.AccentBright
		case pct > 0.5:
			barColor = color
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, ticks[row])))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := min(max(int((v-bottom)/(top-bottom)*8), 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(eighths[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└", yLabelW, "0")))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(placeLabels(labels, barW+gap, axisLen)))
	}
	return b.String()
}

// placeLabels lays labels out on an axis of axisLen cells, skipping any that
// would collide with the previous one. The last label is always attempted.
func placeLabels(labels []string, stride, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	put := func(pos int, lbl string) {
		r := []rune(lbl)
		if pos+len(r) > axisLen {
			pos = axisLen - len(r)
		}
		if pos <= lastEnd || pos < 0 {
			return
		}
		copy(buf[pos:], r)
		lastEnd = pos + len(r)
	}
	for i := 0; i < len(labels)-1; i++ {
		put(i*stride, labels[i])
	}
	if len(labels) > 0 {
		put((len(labels)-1)*stride, labels[len(labels)-1])
	}
	return strings.TrimRight(string(buf), " ")
}

// HBar is one row of a horizontal bar chart.
type HBar struct {
	Label string
	Value float64
	Text  string // display value; formatted from Value when empty
}

// HBarChart renders labeled horizontal bars scaled to the largest value.
func HBarChart(rows []HBar, color lipgloss.Color, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	texts := make([]string, len(rows))
	labelW, textW := 0, 0
	peak := 0.0
	for i, r := range rows {
		texts[i] = r.Text
		if texts[i] == "" {
			texts[i] = formatChartLabel(r.Value)
		}
		labelW = max(labelW, lipgloss.Width(r.Label))
		textW = max(textW, lipgloss.Width(texts[i]))
		peak = max(peak, r.Value)
	}
	barMax := max(width-labelW-textW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(rows))
	for i, r := range rows {
		n := 0
		if peak > 0 && r.Value > 0 {
			n = max(int(r.Value/peak*float64(barMax)), 1)
		}
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label)) +
			blank.Render(" ") +
			barStyle.Render(strings.Repeat("█", n)) +
			blank.Render(strings.Repeat(" ", barMax-n+1)) +
			valueStyle.Render(fmt.Sprintf("%*s", textW, texts[i]))
	}
	return strings.Join(lines, "\n")
}

// StackedRow is one horizontal bar split into colored segments.
type StackedRow struct {
	Label    string
	Segments []float64 // one per series, in legend order
}

// StackedHBarChart renders horizontal bars whose segments stack left to
// right in series order, followed by a legend line.
func StackedHBarChart(rows []StackedRow, series []string, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active
	palette := t.SeriesColors()

	labelW := 0
	peak := 0.0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		total := 0.0
		for _, v := range r.Segments {
			total += v
		}
		peak = max(peak, total)
	}
	if peak == 0 {
		peak = 1
	}
	totalW := len(formatChartLabel(peak))
	barMax := max(width-labelW-totalW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label)))
		b.WriteString(blank.Render(" "))
		used := 0
		total := 0.0
		for i, v := range r.Segments {
			total += v
			n := int(math.Round(total/peak*float64(barMax))) - used
			if n <= 0 {
				continue
			}
			seg := lipgloss.NewStyle().Foreground(palette[i%len(palette)]).Background(t.Surface)
			b.WriteString(seg.Render(strings.Repeat("█", n)))
			used += n
		}
		b.WriteString(blank.Render(strings.Repeat(" ", barMax-used+1)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", totalW, formatChartLabel(total))))
		b.WriteString("\n")
	}
	b.WriteString(Legend(series))
	return b.String()
}

// Legend renders a single-line color key for series names.
func Legend(series []string) string {
	t := theme.Active
	palette := t.SeriesColors()
	text := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	parts := make([]string, len(series))
	for i, s := range series {
		swatch := lipgloss.NewStyle().Foreground(palette[i%len(palette)]).Background(t.Surface)
		parts[i] = swatch.Render("■") + text.Render(" "+s)
	}
	return strings.Join(parts, text.Render("  "))
}

// Box is the five-number summary drawn by BoxLine.
type Box struct {
	LowerWhisker float64
	Q1           float64
	Median       float64
	Q3           float64
	UpperWhisker float64
	Outliers     []float64
}

// BoxLine draws one horizontal box plot across width cells, scaled to
// [lo, hi]: whiskers as ─, the box as █ and the median as ┃. Outliers are
// marked with ∘.
func BoxLine(b Box, lo, hi float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if width < 5 {
		width = 5
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	col := func(v float64) int {
		return min(max(int(math.Round((v-lo)/span*float64(width-1))), 0), width-1)
	}

	cells := []rune(strings.Repeat(" ", width))
	for i := col(b.LowerWhisker); i <= col(b.UpperWhisker); i++ {
		cells[i] = '─'
	}
	for i := col(b.Q1); i <= col(b.Q3); i++ {
		cells[i] = '█'
	}
	cells[col(b.LowerWhisker)] = '├'
	cells[col(b.UpperWhisker)] = '┤'
	cells[col(b.Median)] = '┃'
	for _, o := range b.Outliers {
		cells[col(o)] = '∘'
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(string(cells))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))

	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	scaled := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e9:
		return scaled(1e9, "B")
	case v >= 1e6:
		return scaled(1e6, "M")
	case v >= 1e3:
		return scaled(1e3, "k")
	case v >= 1 || v == 0:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
