package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/config"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/pipeline"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run form answers.
type setupValues struct {
	datasetPath string
	condition   string
	theme       string
	saveErr     error
}

// newSetupForm builds the first-run wizard. res may be nil when the initial
// read failed.
func newSetupForm(res *pipeline.LoadResult, datasetPath, condition string, vals *setupValues) *huh.Form {
	vals.datasetPath = datasetPath
	vals.condition = condition
	vals.theme = theme.Active.Name

	found := "No dataset found at " + datasetPath + "."
	if res != nil {
		found = fmt.Sprintf("Found %s loans in %s.", cli.FormatCount(len(res.Loans)), datasetPath)
	}

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to loandash").
				Description(found+"\nLet's set up a few things."),
			huh.NewInput().
				Title("Dataset path").
				Description("Cleaned loan CSV or a snapshot written by `loandash import`.").
				Value(&vals.datasetPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("dataset path is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Default loan condition").
				Options(huh.NewOptions(model.Conditions...)...).
				Value(&vals.condition),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// applySetup saves the wizard answers and applies them to the running app.
// It reports whether the dataset path changed.
func (a *App) applySetup() bool {
	vals := a.setupVals
	cfg := loadConfigOrDefault()

	path := strings.TrimSpace(vals.datasetPath)
	changed := path != "" && path != a.datasetPath
	if path != "" {
		cfg.General.DatasetPath = path
		a.datasetPath = path
	}

	cfg.General.DefaultCondition = vals.condition
	a.setCondition(vals.condition)

	cfg.Appearance.Theme = vals.theme
	theme.SetActive(vals.theme)

	vals.saveErr = config.Save(cfg)
	if vals.saveErr != nil {
		a.settings.saveErr = vals.saveErr
	}
	return changed
}
