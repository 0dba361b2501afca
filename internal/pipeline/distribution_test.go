package pipeline

import (
	"testing"

	"github.com/theirongolddev/loandash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileLinear(t *testing.T) {
	vals := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, Quantile(vals, 0.25), 1e-9)
	assert.InDelta(t, 2.5, Quantile(vals, 0.5), 1e-9)
	assert.InDelta(t, 3.25, Quantile(vals, 0.75), 1e-9)
	assert.InDelta(t, 4, Quantile(vals, 1), 1e-9)
}

func TestBoxStatsOutliers(t *testing.T) {
	b := BoxStatsOf([]float64{10, 12, 11, 13, 12, 100})
	assert.Equal(t, 6, b.Count)
	assert.InDelta(t, 12, b.Median, 1e-9)
	assert.Equal(t, []float64{100}, b.Outliers)
	assert.InDelta(t, 10, b.LowerWhisker, 1e-9)
	assert.InDelta(t, 13, b.UpperWhisker, 1e-9)
	assert.InDelta(t, 100, b.Max, 1e-9)
}

func TestBoxStatsSingleValue(t *testing.T) {
	b := BoxStatsOf([]float64{5})
	assert.InDelta(t, 5, b.Q1, 1e-9)
	assert.InDelta(t, 5, b.Q3, 1e-9)
	assert.InDelta(t, 5, b.LowerWhisker, 1e-9)
	assert.InDelta(t, 5, b.UpperWhisker, 1e-9)
	assert.Empty(t, b.Outliers)
}

func TestAggregateHistogramCoversAllLoans(t *testing.T) {
	loans := syntheticLoans(1000)
	h := AggregateHistogram(loans, DefaultBins)
	require.Len(t, h.Bins, DefaultBins)
	assert.Equal(t, []string{"36 months", "60 months"}, h.Terms)

	total := 0
	for i, b := range h.Bins {
		total += b.Total()
		assert.Less(t, b.Lower, b.Upper)
		if i > 0 {
			assert.InDelta(t, h.Bins[i-1].Upper, b.Lower, 1e-6)
		}
	}
	assert.Equal(t, len(loans), total)
}

func TestAggregateHistogramMaxInLastBin(t *testing.T) {
	loans := []model.Loan{
		{LoanAmount: 0, Term: "36 months"},
		{LoanAmount: 100, Term: "60 months"},
	}
	h := AggregateHistogram(loans, 20)
	assert.Equal(t, 1, h.Bins[0].ByTerm["36 months"])
	assert.Equal(t, 1, h.Bins[19].ByTerm["60 months"])
	assert.InDelta(t, 5, h.Bins[0].Upper, 1e-9)
}

func TestAggregateHistogramSingleValue(t *testing.T) {
	h := AggregateHistogram([]model.Loan{{LoanAmount: 500, Term: "36 months"}}, 4)
	require.Len(t, h.Bins, 4)
	total := 0
	for _, b := range h.Bins {
		total += b.Total()
	}
	assert.Equal(t, 1, total)
}

func TestAggregateHistogramEmpty(t *testing.T) {
	h := AggregateHistogram(nil, DefaultBins)
	assert.Empty(t, h.Bins)
}

func TestAggregateBoxPlotGroups(t *testing.T) {
	loans := []model.Loan{
		{Purpose: "car", Term: "36 months", LoanAmount: 100},
		{Purpose: "car", Term: "36 months", LoanAmount: 300},
		{Purpose: "car", Term: "60 months", LoanAmount: 900},
		{Purpose: "wedding", Term: "60 months", LoanAmount: 400},
	}
	bp := AggregateBoxPlot(loans)
	assert.Equal(t, []string{"car", "wedding"}, bp.Purposes)
	assert.Equal(t, []string{"36 months", "60 months"}, bp.Terms)
	require.Len(t, bp.Boxes, 3)

	assert.Equal(t, "car", bp.Boxes[0].Purpose)
	assert.Equal(t, "36 months", bp.Boxes[0].Term)
	assert.InDelta(t, 200, bp.Boxes[0].Median, 1e-9)
	assert.Equal(t, "wedding", bp.Boxes[2].Purpose)
}
