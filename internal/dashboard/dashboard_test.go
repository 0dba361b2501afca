package dashboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/loandash/internal/dataset"
	"github.com/theirongolddev/loandash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLoans() []model.Loan {
	d := time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)
	return []model.Loan{
		{ID: "1", LoanAmount: 100, InterestRate: 5.0, IssueDate: d, IssueWeekday: "Monday",
			Purpose: "car", Grade: "B", Term: "36 months", LoanCondition: model.GoodLoan},
		{ID: "2", LoanAmount: 200, InterestRate: 10.0, IssueDate: d, IssueWeekday: "Monday",
			Purpose: "car", Grade: "A", Term: "60 months", LoanCondition: model.BadLoan},
		{ID: "3", LoanAmount: 300, InterestRate: 7.5, IssueDate: d.AddDate(0, 0, 2), IssueWeekday: "Wednesday",
			Purpose: "credit card", Grade: "A", Term: "36 months", LoanCondition: model.GoodLoan},
	}
}

func TestBuildMetrics(t *testing.T) {
	d, err := Build(sampleLoans(), model.GoodLoan)
	require.NoError(t, err)

	require.Len(t, d.Metrics, 4)
	assert.Equal(t, "3", d.Metrics[0].Value)
	assert.Equal(t, "$600", d.Metrics[1].Value)
	assert.Equal(t, "7.50%", d.Metrics[2].Value)
	assert.Equal(t, "$200", d.Metrics[3].Value)
}

func TestBuildPanels(t *testing.T) {
	d, err := Build(sampleLoans(), model.GoodLoan)
	require.NoError(t, err)

	assert.Len(t, d.ByDate, 2)
	require.Len(t, d.ByWeekday, 7)
	assert.Equal(t, "Monday", d.ByWeekday[0].Label)
	assert.Equal(t, 2, d.ByWeekday[0].Count)
	assert.Equal(t, "Sunday", d.ByWeekday[6].Label)

	assert.Equal(t, model.GoodLoan, d.Conditions[0].Condition)
	assert.Equal(t, "A", d.Grades[0].Label)
	assert.Equal(t, 2, d.Grades[0].Count)
}

func TestBuildFiltersAnalysis(t *testing.T) {
	good, err := Build(sampleLoans(), model.GoodLoan)
	require.NoError(t, err)
	bad, err := Build(sampleLoans(), model.BadLoan)
	require.NoError(t, err)

	assert.Equal(t, 2, good.Selected.TotalLoans)
	assert.Equal(t, 1, bad.Selected.TotalLoans)
	assert.Equal(t, good.Summary, bad.Summary)

	total := 0
	for _, b := range good.Histogram.Bins {
		total += b.Total()
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"car", "credit card"}, good.BoxPlot.Purposes)
	assert.Equal(t, []string{"car"}, bad.BoxPlot.Purposes)
}

func TestBuildUnknownCondition(t *testing.T) {
	_, err := Build(sampleLoans(), "Okay Loan")
	assert.ErrorIs(t, err, ErrUnknownCondition)
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil, model.GoodLoan)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestBuildNoRowsForCondition(t *testing.T) {
	loans := sampleLoans()[:1]
	d, err := Build(loans, model.BadLoan)
	require.NoError(t, err)
	assert.False(t, d.HasAnalysis())
	assert.Empty(t, d.Histogram.Bins)
	assert.Empty(t, d.BoxPlot.Boxes)
}

func TestMetricsCountIDsAndRoundHalfEven(t *testing.T) {
	loans := sampleLoans()[:2]
	loans[0].LoanAmount, loans[1].LoanAmount = 100, 201
	loans[1].ID = ""

	d, err := Build(loans, model.GoodLoan)
	require.NoError(t, err)
	assert.Equal(t, "1", d.Metrics[0].Value)
	assert.Equal(t, "$301", d.Metrics[1].Value)
	assert.Equal(t, "$150", d.Metrics[3].Value)
}

func TestRunFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan_clean.csv")
	csv := "id,loan_amount,interest_rate,issue_date,issue_weekday,purpose,grade,term,loan_condition\n" +
		"1,100,5.0,2015-01-05,Monday,debt_consolidation,A,36 months,Good Loan\n" +
		"2,200,10.0,2015-01-06,Tuesday,credit_card,B,60 months,Bad Loan\n" +
		"3,300,7.5,2015-01-07,Wednesday,car,C,36 months,Good Loan\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	d, err := Run(path, model.BadLoan)
	require.NoError(t, err)
	assert.Equal(t, "3", d.Metrics[0].Value)
	assert.Equal(t, []string{"credit card"}, d.BoxPlot.Purposes)
}

func TestLookupPanel(t *testing.T) {
	p, ok := LookupPanel(PanelBoxPlot)
	require.True(t, ok)
	assert.Equal(t, "Loan Amount by Purpose & Term", p.Title)

	_, ok = LookupPanel("nope")
	assert.False(t, ok)
}
