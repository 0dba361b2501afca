package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/config"
	"github.com/theirongolddev/loandash/internal/dataset"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	datasetPath := flagData
	condition := flagCondition
	themeName := cfg.Appearance.Theme
	exportFormat := cfg.Export.Format

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset path").
				Description("Cleaned loan CSV, or a snapshot written by `loandash import`.").
				Value(&datasetPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("dataset path is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Default loan condition").
				Options(huh.NewOptions(model.Conditions...)...).
				Value(&condition),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewSelect[string]().
				Title("Chart export format").
				Options(huh.NewOptions("png", "svg")...).
				Value(&exportFormat),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	cfg.General.DatasetPath = strings.TrimSpace(datasetPath)
	cfg.General.DefaultCondition = condition
	cfg.Appearance.Theme = themeName
	cfg.Export.Format = exportFormat

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	if loans, err := dataset.Load(cfg.General.DatasetPath); err == nil {
		fmt.Printf("  Found %s loans in %s\n", cli.FormatCount(len(loans)), cfg.General.DatasetPath)
	} else {
		fmt.Printf("  Warning: %v\n", err)
	}
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `loandash setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
