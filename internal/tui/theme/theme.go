// Package theme defines color themes for the loandash TUI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color // Extra bright surface for emphasis
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (links, active states)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	AccentDim     lipgloss.Color // Dimmed accent for backgrounds
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color
	GoodLoan      lipgloss.Color // Loan condition roles
	BadLoan       lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    "#100F0F",
	Surface:       "#1C1B1A",
	SurfaceHover:  "#282726",
	SurfaceBright: "#343331",
	Border:        "#403E3C",
	BorderBright:  "#575653",
	BorderAccent:  "#3AA99F",
	TextDim:       "#575653",
	TextMuted:     "#878580",
	TextPrimary:   "#FFFCF0",
	Accent:        "#3AA99F",
	AccentBright:  "#5BC8BE",
	AccentDim:     "#1A3533",
	Green:         "#879A39",
	GreenBright:   "#A3B859",
	Orange:        "#DA702C",
	Red:           "#D14D41",
	Blue:          "#4385BE",
	BlueBright:    "#6BA3D6",
	Yellow:        "#D0A215",
	Magenta:       "#CE5D97",
	Cyan:          "#24837B",
	GoodLoan:      "#879A39",
	BadLoan:       "#D14D41",
}

// CatppuccinMocha is a pastel theme.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    "#1E1E2E",
	Surface:       "#313244",
	SurfaceHover:  "#45475A",
	SurfaceBright: "#585B70",
	Border:        "#585B70",
	BorderBright:  "#7F849C",
	BorderAccent:  "#89B4FA",
	TextDim:       "#6C7086",
	TextMuted:     "#A6ADC8",
	TextPrimary:   "#CDD6F4",
	Accent:        "#89B4FA",
	AccentBright:  "#B4D0FB",
	AccentDim:     "#293147",
	Green:         "#A6E3A1",
	GreenBright:   "#C6F6C1",
	Orange:        "#FAB387",
	Red:           "#F38BA8",
	Blue:          "#89B4FA",
	BlueBright:    "#B4D0FB",
	Yellow:        "#F9E2AF",
	Magenta:       "#F5C2E7",
	Cyan:          "#94E2D5",
	GoodLoan:      "#A6E3A1",
	BadLoan:       "#F38BA8",
}

// TokyoNight is a blue/purple theme.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    "#1A1B26",
	Surface:       "#24283B",
	SurfaceHover:  "#343A52",
	SurfaceBright: "#414868",
	Border:        "#565F89",
	BorderBright:  "#7982A9",
	BorderAccent:  "#7AA2F7",
	TextDim:       "#565F89",
	TextMuted:     "#A9B1D6",
	TextPrimary:   "#C0CAF5",
	Accent:        "#7AA2F7",
	AccentBright:  "#A9C1FF",
	AccentDim:     "#252B3F",
	Green:         "#9ECE6A",
	GreenBright:   "#B9E87A",
	Orange:        "#FF9E64",
	Red:           "#F7768E",
	Blue:          "#7AA2F7",
	BlueBright:    "#A9C1FF",
	Yellow:        "#E0AF68",
	Magenta:       "#BB9AF7",
	Cyan:          "#7DCFFF",
	GoodLoan:      "#9ECE6A",
	BadLoan:       "#F7768E",
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:          "terminal",
	Background:    "0",
	Surface:       "0",
	SurfaceHover:  "8",
	SurfaceBright: "8",
	Border:        "8",
	BorderBright:  "7",
	BorderAccent:  "6",
	TextDim:       "8",
	TextMuted:     "7",
	TextPrimary:   "15",
	Accent:        "6",
	AccentBright:  "14",
	AccentDim:     "0",
	Green:         "2",
	GreenBright:   "10",
	Orange:        "3",
	Red:           "1",
	Blue:          "4",
	BlueBright:    "12",
	Yellow:        "3",
	Magenta:       "5",
	Cyan:          "6",
	GoodLoan:      "10",
	BadLoan:       "9",
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Lookup returns the built-in theme with the given name.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Condition returns the color for a loan condition label, or Accent for
// labels that are neither good nor bad.
func (t Theme) Condition(label string) lipgloss.Color {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "good loan":
		return t.GoodLoan
	case "bad loan":
		return t.BadLoan
	default:
		return t.Accent
	}
}

// SeriesColors returns the categorical palette for per-term series.
func (t Theme) SeriesColors() []lipgloss.Color {
	return []lipgloss.Color{t.Blue, t.Orange, t.Green, t.Magenta, t.Yellow, t.Cyan, t.Red}
}

// Names returns the names of every built-in theme.
func Names() []string {
	names := make([]string, len(All))
	for i, th := range All {
		names[i] = th.Name
	}
	return names
}
