package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/config"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/logger"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagData      string
	flagCondition string
	flagQuiet     bool

	appCfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "loandash",
	Short: "Loan performance dashboard",
	Long:  "Summarize a cleaned loan dataset: headline metrics, issuance trends, loan condition and amount distributions.",
	PersistentPreRunE: applyConfig,
	RunE:              runSummary,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "Dataset path (.csv, or .db snapshot from `loandash import`)")
	rootCmd.PersistentFlags().StringVarP(&flagCondition, "condition", "c", "", "Loan condition for the analysis panels (Good Loan or Bad Loan)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// applyConfig loads the config file and fills any flag the user did not set.
func applyConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	appCfg = cfg

	if !cmd.Flags().Changed("data") {
		flagData = cfg.General.DatasetPath
	}
	if !cmd.Flags().Changed("condition") {
		flagCondition = cfg.General.DefaultCondition
	}
	if !model.IsCondition(flagCondition) {
		return fmt.Errorf("%w: %q (want %q or %q)", dashboard.ErrUnknownCondition,
			flagCondition, model.GoodLoan, model.BadLoan)
	}
	return nil
}

func newLogger() *logger.Logger {
	return logger.New(appCfg.Log)
}

// loadData is the shared data loading path used by all commands.
func loadData() (*pipeline.LoadResult, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Reading %s...\n", flagData)
	}

	result, err := pipeline.Load(flagData)
	if err != nil {
		return nil, err
	}
	newLogger().WithFields(map[string]interface{}{
		"path":       flagData,
		"rows":       len(result.Loans),
		"elapsed_ms": result.Elapsed.Milliseconds(),
	}).Debug("dataset loaded")

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %s loans in %.2fs\n",
			cli.FormatCount(len(result.Loans)), result.Elapsed.Seconds())
		if result.Other > 0 {
			fmt.Fprintf(os.Stderr, "  %d rows have an unrecognized loan condition\n", result.Other)
		}
	}
	return result, nil
}

// buildDashboard runs one render pass for the selected condition.
func buildDashboard() (*pipeline.LoadResult, dashboard.Dashboard, error) {
	result, err := loadData()
	if err != nil {
		return nil, dashboard.Dashboard{}, err
	}
	d, err := dashboard.Build(result.Loans, flagCondition)
	if err != nil {
		return result, dashboard.Dashboard{}, err
	}
	return result, d, nil
}
