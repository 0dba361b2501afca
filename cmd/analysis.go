package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"

	"github.com/spf13/cobra"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Loan amount distribution for one loan condition",
	RunE:  runAnalysis,
}

func init() {
	rootCmd.AddCommand(analysisCmd)
}

func runAnalysis(_ *cobra.Command, _ []string) error {
	_, d, err := buildDashboard()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(dashboard.SectionAnalysis + ": " + d.Condition))
	fmt.Println()

	if !d.HasAnalysis() {
		fmt.Printf("  No loans with condition %q.\n", d.Condition)
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Loans", cli.FormatCount(d.Selected.TotalLoans)},
			{"Total Loan Amount", cli.FormatCurrency(d.Selected.TotalAmount)},
			{"Average Loan Amount", cli.FormatCurrency(d.Selected.AvgLoanAmount)},
			{"Average Interest Rate", cli.FormatRate(d.Selected.AvgInterestRate)},
		},
	}))
	fmt.Println()

	// Histogram: one column per term
	hp, _ := dashboard.LookupPanel(dashboard.PanelHistogram)
	headers := append([]string{hp.XLabel}, d.Histogram.Terms...)
	headers = append(headers, hp.YLabel)
	rows := make([][]string, 0, len(d.Histogram.Bins))
	for _, bin := range d.Histogram.Bins {
		row := []string{cli.FormatCurrency(bin.Lower) + " - " + cli.FormatCurrency(bin.Upper)}
		for _, term := range d.Histogram.Terms {
			row = append(row, cli.FormatCount(bin.ByTerm[term]))
		}
		rows = append(rows, append(row, cli.FormatCount(bin.Total())))
	}
	fmt.Print(cli.RenderTable(cli.Table{Title: hp.Title, Headers: headers, Rows: rows}))
	fmt.Println()

	bp, _ := dashboard.LookupPanel(dashboard.PanelBoxPlot)
	rows = rows[:0]
	for _, box := range d.BoxPlot.Boxes {
		rows = append(rows, []string{
			box.Purpose,
			box.Term,
			cli.FormatCount(box.Count),
			cli.FormatCurrency(box.Min),
			cli.FormatCurrency(box.Q1),
			cli.FormatCurrency(box.Median),
			cli.FormatCurrency(box.Q3),
			cli.FormatCurrency(box.Max),
			strconv.Itoa(len(box.Outliers)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   bp.Title,
		Headers: []string{bp.XLabel, bp.Legend, "N", "Min", "Q1", "Median", "Q3", "Max", "Outliers"},
		Rows:    rows,
	}))
	return nil
}
