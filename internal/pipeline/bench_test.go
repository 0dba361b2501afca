package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/loandash/internal/model"
)

func syntheticLoans(n int) []model.Loan {
	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	purposes := []string{"car", "credit card", "debt consolidation", "home improvement", "other"}
	grades := []string{"A", "B", "C", "D", "E", "F", "G"}
	terms := []string{"36 months", "60 months"}

	loans := make([]model.Loan, n)
	for i := range loans {
		day := start.AddDate(0, 0, i%730)
		cond := model.GoodLoan
		if i%7 == 0 {
			cond = model.BadLoan
		}
		loans[i] = model.Loan{
			ID:            fmt.Sprint(i),
			LoanAmount:    float64(1000 + (i*37)%34000),
			InterestRate:  5 + float64(i%200)/10,
			IssueDate:     day,
			IssueWeekday:  day.Weekday().String(),
			Purpose:       purposes[i%len(purposes)],
			Grade:         grades[i%len(grades)],
			Term:          terms[i%len(terms)],
			LoanCondition: cond,
		}
	}
	return loans
}

func BenchmarkSummarize(b *testing.B) {
	loans := syntheticLoans(100_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(loans)
	}
}

func BenchmarkAggregateDates(b *testing.B) {
	loans := syntheticLoans(100_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AggregateDates(loans)
	}
}

func BenchmarkAggregateBoxPlot(b *testing.B) {
	loans := syntheticLoans(100_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AggregateBoxPlot(loans)
	}
}
