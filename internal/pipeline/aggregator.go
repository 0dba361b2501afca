// Package pipeline loads the loan table and computes the group/aggregate
// views each dashboard panel needs.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/loandash/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize computes the headline metrics. Amounts are summed as decimals so
// the displayed total does not drift on large tables. TotalLoans counts ids
// and skips blank ones; the means cover every row.
func Summarize(loans []model.Loan) model.SummaryStats {
	var stats model.SummaryStats
	if len(loans) == 0 {
		return stats
	}

	total := decimal.Zero
	rates := decimal.Zero
	for _, l := range loans {
		if strings.TrimSpace(l.ID) != "" {
			stats.TotalLoans++
		}
		total = total.Add(decimal.NewFromFloat(l.LoanAmount))
		rates = rates.Add(decimal.NewFromFloat(l.InterestRate))
	}

	n := decimal.NewFromInt(int64(len(loans)))
	stats.Rows = len(loans)
	stats.TotalAmount = total.InexactFloat64()
	stats.AvgLoanAmount = total.Div(n).InexactFloat64()
	stats.AvgInterestRate = rates.Div(n).InexactFloat64()
	return stats
}

// AggregateDates computes the loan count and amount per issue date,
// oldest first.
func AggregateDates(loans []model.Loan) []model.DateStats {
	dayMap := make(map[string]*model.DateStats)
	amounts := make(map[string]decimal.Decimal)

	for _, l := range loans {
		if l.IssueDate.IsZero() {
			continue
		}
		dayKey := l.IssueDate.Format("2006-01-02")
		ds, ok := dayMap[dayKey]
		if !ok {
			ds = &model.DateStats{Date: l.IssueDate}
			dayMap[dayKey] = ds
		}
		ds.Count++
		amounts[dayKey] = amounts[dayKey].Add(decimal.NewFromFloat(l.LoanAmount))
	}

	days := make([]model.DateStats, 0, len(dayMap))
	for key, ds := range dayMap {
		ds.Amount = amounts[key].InexactFloat64()
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}

// AggregateWeekdays counts loans per issue weekday in Monday..Sunday order.
// Days with no loans are present with a zero count. Labels are matched
// case-insensitively on the full name or its three-letter abbreviation;
// anything else follows Sunday in label order.
func AggregateWeekdays(loans []model.Loan) []model.CategoryCount {
	counts := make(map[string]int, len(model.Weekdays))
	for _, l := range loans {
		counts[CanonicalWeekday(l.IssueWeekday)]++
	}

	days := make([]model.CategoryCount, len(model.Weekdays), len(counts)+len(model.Weekdays))
	for i, d := range model.Weekdays {
		days[i] = model.CategoryCount{Label: d, Count: counts[d]}
		delete(counts, d)
	}

	extra := make([]string, 0, len(counts))
	for label := range counts {
		extra = append(extra, label)
	}
	sort.Strings(extra)
	for _, label := range extra {
		days = append(days, model.CategoryCount{Label: label, Count: counts[label]})
	}
	return days
}

// CanonicalWeekday maps "monday", "MON" or " Monday " to "Monday". Labels
// that name no weekday are returned trimmed.
func CanonicalWeekday(s string) string {
	s = strings.TrimSpace(s)
	for _, d := range model.Weekdays {
		if strings.EqualFold(s, d) || strings.EqualFold(s, d[:3]) {
			return d
		}
	}
	return s
}

// AggregateConditions computes each condition's share of all loans,
// largest first.
func AggregateConditions(loans []model.Loan) []model.ConditionShare {
	counts := make(map[string]int)
	for _, l := range loans {
		counts[l.LoanCondition]++
	}

	shares := make([]model.ConditionShare, 0, len(counts))
	for cond, n := range counts {
		shares = append(shares, model.ConditionShare{
			Condition: cond,
			Count:     n,
			Percent:   float64(n) / float64(len(loans)) * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Condition < shares[j].Condition
	})
	return shares
}

// AggregateGrades counts loans per grade, sorted by grade.
func AggregateGrades(loans []model.Loan) []model.CategoryCount {
	return countSorted(loans, func(l model.Loan) string { return l.Grade })
}

// AggregatePurposes counts loans per purpose, sorted by purpose.
func AggregatePurposes(loans []model.Loan) []model.CategoryCount {
	return countSorted(loans, func(l model.Loan) string { return l.Purpose })
}

func countSorted(loans []model.Loan, key func(model.Loan) string) []model.CategoryCount {
	counts := make(map[string]int)
	for _, l := range loans {
		counts[key(l)]++
	}
	out := make([]model.CategoryCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, model.CategoryCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}

// FilterByCondition returns the loans whose condition equals cond.
func FilterByCondition(loans []model.Loan, cond string) []model.Loan {
	var result []model.Loan
	for _, l := range loans {
		if l.LoanCondition == cond {
			result = append(result, l)
		}
	}
	return result
}

// DateRange returns the earliest and latest issue dates.
func DateRange(loans []model.Loan) (first, last time.Time) {
	for _, l := range loans {
		if l.IssueDate.IsZero() {
			continue
		}
		if first.IsZero() || l.IssueDate.Before(first) {
			first = l.IssueDate
		}
		if last.IsZero() || l.IssueDate.After(last) {
			last = l.IssueDate
		}
	}
	return first, last
}
