package cmd

import (
	"fmt"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"

	"github.com/spf13/cobra"
)

var conditionCmd = &cobra.Command{
	Use:   "condition",
	Short: "Loan portion by condition and distribution by grade",
	RunE:  runCondition,
}

func init() {
	rootCmd.AddCommand(conditionCmd)
}

func runCondition(_ *cobra.Command, _ []string) error {
	_, d, err := buildDashboard()
	if err != nil {
		return err
	}

	condPanel, _ := dashboard.LookupPanel(dashboard.PanelCondition)
	gradePanel, _ := dashboard.LookupPanel(dashboard.PanelGrade)

	fmt.Println()
	fmt.Println(cli.RenderTitle(dashboard.SectionCondition))
	fmt.Println()

	rows := make([][]string, 0, len(d.Conditions))
	for _, s := range d.Conditions {
		rows = append(rows, []string{s.Condition, cli.FormatCount(s.Count), cli.FormatPercent(s.Percent)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   condPanel.Title,
		Headers: []string{"Condition", "Loans", "Share"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Println(cli.RenderSection(gradePanel.Title))
	peak := 0
	for _, g := range d.Grades {
		peak = max(peak, g.Count)
	}
	for _, g := range d.Grades {
		fmt.Println(cli.RenderBar(g.Label, 4, float64(g.Count), float64(peak), 40, cli.FormatCount(g.Count)))
	}
	return nil
}
