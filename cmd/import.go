package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dataset"
	"github.com/theirongolddev/loandash/internal/store"

	"github.com/spf13/cobra"
)

var flagImportOut string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert the cleaned CSV into a SQLite snapshot",
	Long: "Reads the dataset (--data) once, applies the purpose rewrite, and stores the rows\n" +
		"in a SQLite file that can be passed back with --data.",
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&flagImportOut, "out", "o", "", "Snapshot path (default: dataset path with .db extension)")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	out := flagImportOut
	if out == "" {
		out = strings.TrimSuffix(flagData, filepath.Ext(flagData)) + ".db"
	}
	if filepath.Clean(out) == filepath.Clean(flagData) {
		return fmt.Errorf("snapshot path %s is the input dataset", out)
	}

	log := newLogger().WithFields(map[string]interface{}{"source": flagData, "snapshot": out})

	loans, err := dataset.Load(flagData)
	if err != nil {
		return err
	}

	snap, err := store.Open(out)
	if err != nil {
		return err
	}
	defer func() { _ = snap.Close() }()

	if err := snap.ReplaceLoans(loans, flagData); err != nil {
		log.WithError(err).Error("import failed")
		return fmt.Errorf("writing snapshot: %w", err)
	}
	log.WithField("rows", len(loans)).Info("snapshot written")

	if !flagQuiet {
		fmt.Printf("  Wrote %s loans to %s\n", cli.FormatCount(len(loans)), out)
		fmt.Printf("  Use it with: loandash --data %s\n", out)
	}
	return nil
}
