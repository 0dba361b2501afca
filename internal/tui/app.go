// Package tui provides the interactive Bubble Tea dashboard for loandash.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/config"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/pipeline"
	"github.com/theirongolddev/loandash/internal/tui/components"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when a dataset read finishes.
type DataLoadedMsg struct {
	Result *pipeline.LoadResult
	Err    error
}

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabTime
	tabCondition
	tabAnalysis
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	datasetPath string
	result      *pipeline.LoadResult
	loaded      bool
	loading     bool
	loadErr     error

	// Render pass for the selected condition
	condition string
	dash      dashboard.Dashboard
	buildErr  error

	// UI state
	width         int
	height        int
	activeTab     int
	showHelp      bool
	timePanel     int // 0 issued, 1 amount, 2 weekday
	analysisPanel int // 0 histogram, 1 box plot

	// Condition picker (huh select)
	conditionForm   *huh.Form
	conditionChoice *string

	// Per-tab state
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height
)

var timePanels = []dashboard.PanelID{dashboard.PanelIssued, dashboard.PanelAmount, dashboard.PanelWeekday}

var analysisPanels = []dashboard.PanelID{dashboard.PanelHistogram, dashboard.PanelBoxPlot}

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model reading datasetPath with condition
// preselected for the analysis tab.
func NewApp(datasetPath, condition string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if !model.IsCondition(condition) {
		condition = model.GoodLoan
	}

	return App{
		datasetPath:     datasetPath,
		condition:       condition,
		needSetup:       !config.Exists(),
		loading:         true,
		spinner:         sp,
		conditionChoice: new(string),
		setupVals:       &setupValues{},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.datasetPath),
		a.spinner.Tick,
	)
}

// rebuild runs the render pass for the current condition.
func (a *App) rebuild() {
	if a.result == nil {
		return
	}
	a.dash, a.buildErr = dashboard.Build(a.result.Loans, a.condition)
}

// setCondition switches the analysis filter and recomputes the dashboard.
func (a *App) setCondition(c string) {
	if !model.IsCondition(c) || c == a.condition {
		return
	}
	a.condition = c
	a.rebuild()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.conditionForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Forms intercept all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.conditionForm != nil {
			return a.updateConditionForm(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if !a.loading {
				a.loading = true
				return a, loadDataCmd(a.datasetPath)
			}
			return a, nil
		case "s":
			return a.openConditionForm()
		case "g":
			a.setCondition(model.GoodLoan)
			return a, nil
		case "b":
			a.setCondition(model.BadLoan)
			return a, nil
		case "tab", "]":
			a.cyclePanel(1)
			return a, nil
		case "shift+tab", "[":
			a.cyclePanel(-1)
			return a, nil
		case "1", "2", "3":
			a.selectPanel(int(key[0] - '1'))
			return a, nil
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loading = false
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.result = msg.Result
			a.rebuild()
		}

		if a.needSetup && a.setupForm == nil {
			a.setupForm = newSetupForm(a.result, a.datasetPath, a.condition, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to an active form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.conditionForm != nil {
		return a.updateConditionForm(msg)
	}

	return a, nil
}

// cyclePanel moves between the sub-panels of the time and analysis tabs.
func (a *App) cyclePanel(delta int) {
	switch a.activeTab {
	case tabTime:
		a.timePanel = (a.timePanel + delta + len(timePanels)) % len(timePanels)
	case tabAnalysis:
		a.analysisPanel = (a.analysisPanel + delta + len(analysisPanels)) % len(analysisPanels)
	}
}

func (a *App) selectPanel(i int) {
	switch a.activeTab {
	case tabTime:
		if i < len(timePanels) {
			a.timePanel = i
		}
	case tabAnalysis:
		if i < len(analysisPanels) {
			a.analysisPanel = i
		}
	}
}

func (a App) openConditionForm() (tea.Model, tea.Cmd) {
	*a.conditionChoice = a.condition
	a.conditionForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(dashboard.SelectLabel).
				Options(huh.NewOptions(model.Conditions...)...).
				Value(a.conditionChoice),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	if a.width > 0 {
		a.conditionForm = a.conditionForm.WithWidth(min(a.width-4, 60))
	}
	return a, a.conditionForm.Init()
}

func (a App) updateConditionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.conditionForm = nil
		return a, nil
	}

	form, cmd := a.conditionForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.conditionForm = f
	}

	switch a.conditionForm.State {
	case huh.StateCompleted:
		a.setCondition(*a.conditionChoice)
		a.conditionForm = nil
		a.activeTab = tabAnalysis
		return a, nil
	case huh.StateAborted:
		a.conditionForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		reload := a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		if reload {
			a.loading = true
			return a, loadDataCmd(a.datasetPath)
		}
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.conditionForm != nil {
		return a.viewConditionForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  loandash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render(dashboard.PageIcon + " " + dashboard.PageTitle))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading " + a.datasetPath))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewConditionForm() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.conditionForm.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	type binding struct{ key, desc string }
	section := func(b *strings.Builder, name string, binds []binding) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, bind := range binds {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	section(&b, "Navigation", []binding{
		{"o t c a x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"tab [ ]", "Cycle chart panels"},
		{"1 2 3", "Pick chart panel"},
		{"j k", "Navigate settings"},
	})
	b.WriteString("\n")
	section(&b, dashboard.SectionAnalysis, []binding{
		{"s", dashboard.SelectLabel},
		{"g", "Show " + model.GoodLoan},
		{"b", "Show " + model.BadLoan},
	})
	b.WriteString("\n")
	section(&b, "Actions", []binding{
		{"Enter", "Edit / Confirm"},
		{"Esc", "Cancel"},
		{"r", "Reload dataset"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	})
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + title pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" "+dashboard.PageIcon+" ") +
		pillAccent.Render(dashboard.PageTitle) +
		pillStyle.Render(" │ ") +
		pillAccent.Render(a.condition)
	if a.loading {
		pill += pillStyle.Render(" │ ") + a.spinner.View() + pillStyle.Render(" reloading")
	}
	pill += pillStyle.Render(" ")

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	dataInfo := ""
	if a.result != nil {
		dataInfo = fmt.Sprintf("%s loans · %.2fs", cli.FormatCount(len(a.result.Loans)), a.result.Elapsed.Seconds())
	}
	statusBar := components.RenderStatusBar(w, a.condition, dataInfo)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch {
	case a.activeTab == tabSettings:
		content = a.renderSettingsTab(cw)
	case a.loadErr != nil:
		content = a.renderErrorCard("Could not load dataset", a.loadErr, cw)
	case a.buildErr != nil:
		content = a.renderErrorCard("Could not build dashboard", a.buildErr, cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabTime:
			content = a.renderTimeTab(cw, contentH)
		case tabCondition:
			content = a.renderConditionTab(cw)
		case tabAnalysis:
			content = a.renderAnalysisTab(cw, contentH)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderErrorCard(title string, err error, cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := errStyle.Render(err.Error()) + "\n\n" +
		hintStyle.Render(fmt.Sprintf("Dataset: %s", a.datasetPath)) + "\n" +
		hintStyle.Render("[r] retry  [x] settings")
	return components.ContentCard(title, body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd reads the dataset in the background.
func loadDataCmd(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := pipeline.Load(path)
		return DataLoadedMsg{Result: res, Err: err}
	}
}

// chartDateLabels builds compact X-axis labels for an ascending date series.
// The first label and each month boundary show the month ("Jan"); other
// positions show the day number.
func chartDateLabels(days []model.DateStats) []string {
	labels := make([]string, len(days))
	prevMonth, prevYear := time.Month(0), 0
	for i, d := range days {
		switch {
		case i == 0 || d.Date.Year() != prevYear:
			labels[i] = d.Date.Format("Jan 06")
		case d.Date.Month() != prevMonth:
			labels[i] = d.Date.Format("Jan")
		default:
			labels[i] = d.Date.Format("2")
		}
		prevMonth, prevYear = d.Date.Month(), d.Date.Year()
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
