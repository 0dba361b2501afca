package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7} {
		widths := LayoutRow(101, n)
		require.Len(t, widths, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		assert.Equal(t, 101, sum)
	}
	assert.Nil(t, LayoutRow(80, 0))
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	require.Less(t, shortLines, tallLines)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	assert.Len(t, lines, tallLines)

	// Padding under the short card must still carry background styling.
	for i := shortLines; i < len(lines); i++ {
		assert.Contains(t, lines[i], "\x1b[", "line %d has no ANSI codes", i)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Total Loans", Value: "3", Help: "Total Number of Loans"},
		{Label: "Total Loan Amount", Value: "$600", Help: "Total Loan Amount"},
		{Label: "Average Interest Rate", Value: "10.00%", Help: "Average Interest Rate"},
		{Label: "Average Loan Amount", Value: "$200", Help: "Average Loan Amount"},
	}, 120)

	for _, line := range strings.Split(row, "\n") {
		assert.Equal(t, 120, lipgloss.Width(line))
	}
	assert.Contains(t, row, "$600")
	assert.Contains(t, row, "10.00%")
}
