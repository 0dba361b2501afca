package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/pipeline"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func testResult() *pipeline.LoadResult {
	loans := []model.Loan{
		{ID: "1", LoanAmount: 100, InterestRate: 10, IssueDate: day("2024-01-01"), IssueWeekday: "Monday",
			Purpose: "car", Grade: "A", Term: "36 months", LoanCondition: model.GoodLoan},
		{ID: "2", LoanAmount: 200, InterestRate: 12, IssueDate: day("2024-01-02"), IssueWeekday: "Tuesday",
			Purpose: "debt consolidation", Grade: "B", Term: "60 months", LoanCondition: model.GoodLoan},
		{ID: "3", LoanAmount: 300, InterestRate: 8, IssueDate: day("2024-02-05"), IssueWeekday: "Monday",
			Purpose: "car", Grade: "A", Term: "36 months", LoanCondition: model.BadLoan},
	}
	return &pipeline.LoadResult{Path: "loans.csv", Loans: loans, GoodLoans: 2, BadLoans: 1}
}

// loadedApp returns an app that has received its data and a window size.
func loadedApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	theme.SetActive("flexoki-dark")

	a := NewApp("loans.csv", model.GoodLoan)
	a.needSetup = false

	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	m, _ = m.Update(DataLoadedMsg{Result: testResult()})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m.(App)
}

func TestDataLoadedBuildsDashboard(t *testing.T) {
	a := loadedApp(t)
	require.NoError(t, a.buildErr)
	assert.True(t, a.loaded)
	assert.Equal(t, 3, a.dash.Summary.TotalLoans)
	assert.Equal(t, 2, a.dash.Selected.TotalLoans)
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)
	assert.Equal(t, tabTime, press(t, a, "t").activeTab)
	assert.Equal(t, tabCondition, press(t, a, "c").activeTab)
	assert.Equal(t, tabAnalysis, press(t, a, "a").activeTab)
	assert.Equal(t, tabSettings, press(t, a, "x").activeTab)
	assert.Equal(t, tabSettings, press(t, a, "left").activeTab)
	assert.Equal(t, tabTime, press(t, a, "right").activeTab)
}

func TestConditionQuickSwitch(t *testing.T) {
	a := press(t, loadedApp(t), "b")
	assert.Equal(t, model.BadLoan, a.condition)
	assert.Equal(t, 1, a.dash.Selected.TotalLoans)
	assert.Equal(t, 3, a.dash.Summary.TotalLoans, "top metrics stay unfiltered")

	a = press(t, a, "g")
	assert.Equal(t, model.GoodLoan, a.condition)
}

func TestConditionFormOpensAndCancels(t *testing.T) {
	a := press(t, loadedApp(t), "s")
	require.NotNil(t, a.conditionForm)
	assert.Equal(t, model.GoodLoan, *a.conditionChoice)

	a = press(t, a, "esc")
	assert.Nil(t, a.conditionForm)
	assert.Equal(t, model.GoodLoan, a.condition)
}

func TestPanelCycling(t *testing.T) {
	a := press(t, loadedApp(t), "t", "tab", "tab")
	assert.Equal(t, 2, a.timePanel)
	a = press(t, a, "tab")
	assert.Equal(t, 0, a.timePanel)

	a = press(t, a, "a", "2")
	assert.Equal(t, 1, a.analysisPanel)
	a = press(t, a, "3")
	assert.Equal(t, 1, a.analysisPanel, "out of range panel ignored")
}

func TestEveryTabRenders(t *testing.T) {
	a := loadedApp(t)
	for _, key := range []string{"o", "t", "c", "a", "x"} {
		a = press(t, a, key)
		view := a.View()
		assert.Len(t, strings.Split(view, "\n"), 45, "tab %s", key)
	}

	a = press(t, a, "a", "2")
	assert.NotEmpty(t, a.View())
}

func TestLoadErrorShowsCard(t *testing.T) {
	a := loadedApp(t)
	m, _ := a.Update(DataLoadedMsg{Err: errors.New("open loans.csv: no such file")})
	a = m.(App)
	assert.Contains(t, a.View(), "no such file")
}

func TestChartDateLabels(t *testing.T) {
	labels := chartDateLabels([]model.DateStats{
		{Date: day("2024-01-30")},
		{Date: day("2024-01-31")},
		{Date: day("2024-02-01")},
	})
	assert.Equal(t, []string{"Jan 24", "31", "Feb"}, labels)
}

func TestMergeBins(t *testing.T) {
	hist := model.Histogram{Terms: []string{"36 months"}}
	for i := 0; i < 10; i++ {
		hist.Bins = append(hist.Bins, model.HistogramBin{
			Lower: float64(i), Upper: float64(i + 1),
			ByTerm: map[string]int{"36 months": 1},
		})
	}
	merged := mergeBins(hist, 4)
	require.Len(t, merged, 4)
	assert.Equal(t, 0.0, merged[0].Lower)
	assert.Equal(t, 10.0, merged[3].Upper)
	total := 0
	for _, b := range merged {
		total += b.Total()
	}
	assert.Equal(t, 10, total)
}
