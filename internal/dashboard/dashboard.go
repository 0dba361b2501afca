// Package dashboard runs one render pass: it turns the loaded loan table into
// every metric and panel the surfaces display.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dataset"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/pipeline"
)

// ErrUnknownCondition is returned when the selected condition is not one of
// model.Conditions.
var ErrUnknownCondition = errors.New("dashboard: unknown loan condition")

// Metric is one headline number with its display string.
type Metric struct {
	Label string
	Value string
	Help  string
}

// Dashboard is the output of one render pass.
type Dashboard struct {
	Condition string

	Summary model.SummaryStats
	Metrics []Metric

	ByDate    []model.DateStats
	ByWeekday []model.CategoryCount

	Conditions []model.ConditionShare
	Grades     []model.CategoryCount

	// Analysis panels, computed on the rows matching Condition.
	Selected  model.SummaryStats
	Histogram model.Histogram
	BoxPlot   model.BoxPlot
}

// Build computes every panel for loans, filtering the analysis panels to
// condition.
func Build(loans []model.Loan, condition string) (Dashboard, error) {
	if !model.IsCondition(condition) {
		return Dashboard{}, fmt.Errorf("%w: %q", ErrUnknownCondition, condition)
	}
	if len(loans) == 0 {
		return Dashboard{}, dataset.ErrEmptyDataset
	}

	d := Dashboard{
		Condition:  condition,
		Summary:    pipeline.Summarize(loans),
		ByDate:     pipeline.AggregateDates(loans),
		ByWeekday:  pipeline.AggregateWeekdays(loans),
		Conditions: pipeline.AggregateConditions(loans),
		Grades:     pipeline.AggregateGrades(loans),
	}
	d.Metrics = Metrics(d.Summary)

	selected := pipeline.FilterByCondition(loans, condition)
	d.Selected = pipeline.Summarize(selected)
	d.Histogram = pipeline.AggregateHistogram(selected, pipeline.DefaultBins)
	d.BoxPlot = pipeline.AggregateBoxPlot(selected)

	return d, nil
}

// Run performs a full render pass: it reads the dataset at path and builds
// the dashboard for condition.
func Run(path, condition string) (Dashboard, error) {
	if !model.IsCondition(condition) {
		return Dashboard{}, fmt.Errorf("%w: %q", ErrUnknownCondition, condition)
	}
	res, err := pipeline.Load(path)
	if err != nil {
		return Dashboard{}, err
	}
	return Build(res.Loans, condition)
}

// Metrics formats the four headline metrics in display order.
func Metrics(s model.SummaryStats) []Metric {
	return []Metric{
		{Label: "Total Loans", Value: cli.FormatCount(s.TotalLoans), Help: "Total Number of Loans"},
		{Label: "Total Loan Amount", Value: cli.FormatCurrency(s.TotalAmount), Help: "Total Loan Amount"},
		{Label: "Average Interest Rate", Value: cli.FormatRate(s.AvgInterestRate), Help: "Average Interest Rate"},
		{Label: "Average Loan Amount", Value: cli.FormatCurrency(s.AvgLoanAmount), Help: "Average Loan Amount"},
	}
}

// HasAnalysis reports whether any rows matched the selected condition.
func (d Dashboard) HasAnalysis() bool {
	return d.Selected.Rows > 0
}
