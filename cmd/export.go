package cmd

import (
	"fmt"

	"github.com/theirongolddev/loandash/internal/charts"

	"github.com/spf13/cobra"
)

var (
	flagExportDir    string
	flagExportFormat string
	flagExportWidth  int
	flagExportHeight int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every chart panel to PNG or SVG files",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportDir, "out", "o", "", "Output directory (default from config)")
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "Image format: png or svg (default from config)")
	exportCmd.Flags().IntVar(&flagExportWidth, "width", 0, "Image width in pixels (default from config)")
	exportCmd.Flags().IntVar(&flagExportHeight, "height", 0, "Image height in pixels (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	dir := appCfg.Export.Dir
	if cmd.Flags().Changed("out") {
		dir = flagExportDir
	}
	formatName := appCfg.Export.Format
	if cmd.Flags().Changed("format") {
		formatName = flagExportFormat
	}
	format, err := charts.ParseFormat(formatName)
	if err != nil {
		return err
	}
	opts := charts.Options{Format: format, Width: appCfg.Export.Width, Height: appCfg.Export.Height}
	if flagExportWidth > 0 {
		opts.Width = flagExportWidth
	}
	if flagExportHeight > 0 {
		opts.Height = flagExportHeight
	}

	_, d, err := buildDashboard()
	if err != nil {
		return err
	}

	log := newLogger().WithFields(map[string]interface{}{
		"dir":       dir,
		"format":    string(format),
		"condition": d.Condition,
	})

	result, err := charts.Export(dir, d, opts)
	if err != nil {
		log.WithError(err).Error("export failed")
		return err
	}
	for _, id := range result.Skipped {
		log.WithField("panel", string(id)).Warn("no data, panel skipped")
	}
	log.Infof("exported %d charts", len(result.Files))

	if !flagQuiet {
		for _, f := range result.Files {
			fmt.Printf("  %s\n", f)
		}
	}
	return nil
}
