package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/loandash/internal/charts"
	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/config"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/tui/components"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldDataset = iota
	settingsFieldCondition
	settingsFieldTheme
	settingsFieldExportDir
	settingsFieldExportFormat
	settingsFieldExportWidth
	settingsFieldServerAddr
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldDataset:
		ti.Placeholder = "data_input/loan_clean.csv"
		ti.SetValue(a.datasetPath)
	case settingsFieldCondition:
		ti.Placeholder = strings.Join(model.Conditions, " or ")
		ti.SetValue(cfg.General.DefaultCondition)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldExportDir:
		ti.Placeholder = "charts"
		ti.SetValue(cfg.Export.Dir)
	case settingsFieldExportFormat:
		ti.Placeholder = "png or svg"
		ti.SetValue(cfg.Export.Format)
	case settingsFieldExportWidth:
		ti.Placeholder = "1024 (pixels)"
		ti.SetValue(strconv.Itoa(cfg.Export.Width))
	case settingsFieldServerAddr:
		ti.Placeholder = "127.0.0.1:8501"
		ti.SetValue(cfg.Server.Addr)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		reload := a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		if reload {
			a.loading = true
			return a, loadDataCmd(a.datasetPath)
		}
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates and persists the edited field. It reports whether
// the dataset must be read again.
func (a *App) settingsSave() bool {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())
	reload := false

	switch a.settings.cursor {
	case settingsFieldDataset:
		if val == "" {
			a.settings.saveErr = errors.New("dataset path cannot be empty")
			return false
		}
		cfg.General.DatasetPath = val
		reload = val != a.datasetPath
		a.datasetPath = val
	case settingsFieldCondition:
		if !model.IsCondition(val) {
			a.settings.saveErr = fmt.Errorf("unknown condition %q", val)
			return false
		}
		cfg.General.DefaultCondition = val
		a.setCondition(val)
	case settingsFieldTheme:
		if _, ok := theme.Lookup(val); !ok {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return false
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldExportDir:
		cfg.Export.Dir = val
	case settingsFieldExportFormat:
		f, err := charts.ParseFormat(val)
		if err != nil {
			a.settings.saveErr = err
			return false
		}
		cfg.Export.Format = string(f)
	case settingsFieldExportWidth:
		w, err := strconv.Atoi(val)
		if err != nil || w < 100 {
			a.settings.saveErr = errors.New("width must be a number of at least 100")
			return false
		}
		cfg.Export.Width = w
	case settingsFieldServerAddr:
		cfg.Server.Addr = val
	}

	a.settings.saveErr = config.Save(cfg)
	return reload
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct{ label, value string }{
		{"Dataset", a.datasetPath},
		{"Default Condition", cfg.General.DefaultCondition},
		{"Theme", cfg.Appearance.Theme},
		{"Export Dir", cfg.Export.Dir},
		{"Export Format", cfg.Export.Format},
		{"Export Width", strconv.Itoa(cfg.Export.Width)},
		{"Server Address", cfg.Server.Addr},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		switch {
		case a.settings.editing && i == a.settings.cursor:
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			form.WriteString(a.settings.input.View())
		case i == a.settings.cursor:
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			form.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker+label+value); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		default:
			form.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		form.WriteString("\n")
		form.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		form.WriteString("\n")
		form.WriteString(greenStyle.Render("Saved!"))
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var info strings.Builder
	loans, elapsed := "-", "-"
	if a.result != nil {
		loans = cli.FormatCount(len(a.result.Loans))
		elapsed = fmt.Sprintf("%.2fs", a.result.Elapsed.Seconds())
	}
	info.WriteString(labelStyle.Render("Loans loaded:  ") + valueStyle.Render(loans) + "\n")
	info.WriteString(labelStyle.Render("Load time:     ") + valueStyle.Render(elapsed) + "\n")
	info.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.Path()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", form.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}
