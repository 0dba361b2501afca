// Package cmd implements the loandash CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/loandash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Dataset:           %s\n", cfg.General.DatasetPath)
	fmt.Printf("    Default condition: %s\n", cfg.General.DefaultCondition)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Directory: %s\n", cfg.Export.Dir)
	fmt.Printf("    Format:    %s\n", cfg.Export.Format)
	fmt.Printf("    Size:      %dx%d\n", cfg.Export.Width, cfg.Export.Height)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s, %s, %s, %s\n",
		config.EnvDataset, config.EnvAddr, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvExportDir, config.EnvWidth)
	fmt.Println("  Run `loandash setup` to reconfigure.")
	return nil
}
