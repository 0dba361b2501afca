package cmd

import (
	"fmt"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline loan metrics",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, d, err := buildDashboard()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(dashboard.PageIcon + " " + dashboard.Headline))
	fmt.Println()

	rows := make([][]string, 0, len(d.Metrics)+4)
	for _, m := range d.Metrics {
		rows = append(rows, []string{m.Label, m.Value})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{model.GoodLoan, cli.FormatCount(result.GoodLoans)},
		[]string{model.BadLoan, cli.FormatCount(result.BadLoans)},
	)
	if n := len(d.ByDate); n > 0 {
		rows = append(rows, []string{"Issue Dates",
			cli.FormatDate(d.ByDate[0].Date) + " to " + cli.FormatDate(d.ByDate[n-1].Date)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	return nil
}
