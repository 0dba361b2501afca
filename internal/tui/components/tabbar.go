package components

import (
	"strings"

	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Time", Key: 't', KeyPos: 0},
	{Name: "Condition", Key: 'c', KeyPos: 0},
	{Name: "Analysis", Key: 'a', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

func tabStyles() (active, inactive, key, dimKey lipgloss.Style) {
	t := theme.Active
	active = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	inactive = lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	key = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)
	dimKey = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	return active, inactive, key, dimKey
}

func renderTab(tab Tab, isActive bool) string {
	activeStyle, inactiveStyle, keyStyle, dimKeyStyle := tabStyles()
	if isActive {
		return activeStyle.Render(tab.Name)
	}

	pad := inactiveStyle.Render(" ")
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		before := tab.Name[:tab.KeyPos]
		key := string(tab.Name[tab.KeyPos])
		after := tab.Name[tab.KeyPos+1:]
		return pad + inactiveStyle.Render(before) + keyStyle.Render(key) +
			inactiveStyle.Render(after) + pad
	}
	// Key not in name (e.g., "Settings" with 'x')
	return pad + inactiveStyle.Render(tab.Name) +
		dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]") + pad
}

// TabVisualWidth returns the rendered width of a tab, matching RenderTabBar.
func TabVisualWidth(tab Tab, isActive bool) int {
	return lipgloss.Width(renderTab(tab, isActive))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}

	row := strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
