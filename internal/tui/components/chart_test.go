package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparklineLength(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3}, theme.Active.Accent)
	assert.Equal(t, 4, lipgloss.Width(out))
	assert.Empty(t, Sparkline(nil, theme.Active.Accent))
}

func TestDownsampleKeepsEnds(t *testing.T) {
	values := make([]float64, 100)
	labels := make([]string, 100)
	for i := range values {
		values[i] = float64(i)
		labels[i] = string(rune('a' + i%26))
	}
	v, l := Downsample(values, labels, 10)
	require.Len(t, v, 10)
	require.Len(t, l, 10)
	assert.Equal(t, 0.0, v[0])
	assert.Equal(t, 99.0, v[9])

	same, _ := Downsample(values[:5], nil, 10)
	assert.Len(t, same, 5)
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, theme.Active.Blue, 10, 2)
	assert.NotContains(t, out, "\n")
}

func TestBarChartHasAxisAndLabels(t *testing.T) {
	out := BarChart([]float64{10, 20, 5}, []string{"Mon", "Tue", "Wed"}, theme.Active.Blue, 40, 8)
	assert.Contains(t, out, "└")
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "Wed")
}

func TestHBarChartScalesToPeak(t *testing.T) {
	out := HBarChart([]HBar{
		{Label: "A", Value: 10},
		{Label: "B", Value: 5, Text: "five"},
	}, theme.Active.Blue, 40)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	a := strings.Count(lines[0], "█")
	b := strings.Count(lines[1], "█")
	assert.Greater(t, a, b)
	assert.Contains(t, lines[1], "five")
	for _, line := range lines {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(line))
	}
}

func TestStackedHBarChartLegend(t *testing.T) {
	out := StackedHBarChart([]StackedRow{
		{Label: "0-10k", Segments: []float64{3, 1}},
		{Label: "10-20k", Segments: []float64{1, 0}},
	}, []string{"36 months", "60 months"}, 50)

	assert.Contains(t, out, "36 months")
	assert.Contains(t, out, "60 months")
	assert.Contains(t, out, "0-10k")
}

func TestBoxLineMarksMedian(t *testing.T) {
	out := BoxLine(Box{LowerWhisker: 0, Q1: 25, Median: 50, Q3: 75, UpperWhisker: 100, Outliers: []float64{120}},
		0, 120, 25, theme.Active.Blue)
	assert.Equal(t, 25, lipgloss.Width(out))
	assert.Contains(t, out, "┃")
	assert.Contains(t, out, "∘")
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "0", formatChartLabel(0))
	assert.Equal(t, "5k", formatChartLabel(5000))
	assert.Equal(t, "1.5M", formatChartLabel(1_500_000))
	assert.Equal(t, "0.25", formatChartLabel(0.25))
}

func TestShareBarShowsPercent(t *testing.T) {
	out := ShareBar("Good Loan", 80, "4", 10, 20)
	assert.Contains(t, out, "80.0%")
	assert.Contains(t, out, "Good Loan")
	assert.Equal(t, theme.Active.BadLoan, ConditionColor("Bad Loan"))
}

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, 0, TabIdxByKey('o'))
	assert.Equal(t, 4, TabIdxByKey('x'))
	assert.Equal(t, -1, TabIdxByKey('z'))
}
