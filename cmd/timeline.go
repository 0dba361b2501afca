package cmd

import (
	"fmt"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"

	"github.com/spf13/cobra"
)

var flagTimelineLimit int

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Loans issued over time and by weekday",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().IntVarP(&flagTimelineLimit, "limit", "n", 30, "Show only the last N issue dates (0 for all)")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
	_, d, err := buildDashboard()
	if err != nil {
		return err
	}

	issued, _ := dashboard.LookupPanel(dashboard.PanelIssued)
	amount, _ := dashboard.LookupPanel(dashboard.PanelAmount)
	weekday, _ := dashboard.LookupPanel(dashboard.PanelWeekday)

	fmt.Println()
	fmt.Println(cli.RenderTitle(issued.Tab + " / " + amount.Tab))
	fmt.Println()

	counts := make([]float64, len(d.ByDate))
	amounts := make([]float64, len(d.ByDate))
	for i, day := range d.ByDate {
		counts[i] = float64(day.Count)
		amounts[i] = day.Amount
	}
	fmt.Printf("  %-16s %s\n", issued.YLabel, cli.RenderSparkline(counts))
	fmt.Printf("  %-16s %s\n\n", amount.YLabel, cli.RenderSparkline(amounts))

	days := d.ByDate
	if flagTimelineLimit > 0 && len(days) > flagTimelineLimit {
		days = days[len(days)-flagTimelineLimit:]
	}
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		rows = append(rows, []string{
			cli.FormatDate(day.Date),
			cli.ShortWeekday(day.Date.Weekday().String()),
			cli.FormatCount(day.Count),
			cli.FormatCurrency(day.Amount),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{issued.XLabel, "Day", issued.YLabel, amount.YLabel},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Println(cli.RenderSection(weekday.Title))
	peak := 0
	for _, c := range d.ByWeekday {
		peak = max(peak, c.Count)
	}
	for _, c := range d.ByWeekday {
		fmt.Println(cli.RenderBar(c.Label, 10, float64(c.Count), float64(peak), 40, cli.FormatCount(c.Count)))
	}
	return nil
}
