package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorBlue      = lipgloss.Color("#4385BE")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	barStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(64).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSection renders a section header such as "Loan Condition".
func RenderSection(name string) string {
	return "  " + headerStyle.Render(name)
}

// RenderTable renders a bordered table with headers and rows.
// A row consisting of the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	widths := columnWidths(t, numCols)

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(RenderSection(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// Label column left-aligned, values right-aligned
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

// RenderBar renders one labeled horizontal bar chart entry.
func RenderBar(label string, labelW int, value, maxValue float64, maxWidth int, valueStr string) string {
	barLen := 0
	if maxValue > 0 && value > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
	}
	return fmt.Sprintf("  %s %s %s",
		mutedStyle.Render(fmt.Sprintf("%-*s", labelW, label)),
		barStyle.Render(strings.Repeat("█", barLen)),
		valueStyle.Render(valueStr))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return barStyle.Render(b.String())
}
