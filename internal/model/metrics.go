package model

import "time"

// SummaryStats holds the headline metrics across all loans.
type SummaryStats struct {
	Rows            int
	TotalLoans      int // rows with a non-blank id
	TotalAmount     float64
	AvgInterestRate float64
	AvgLoanAmount   float64
}

// DateStats holds loan count and amount for one issue date.
type DateStats struct {
	Date   time.Time
	Count  int
	Amount float64
}

// CategoryCount is a count for one category label (weekday, grade, condition).
type CategoryCount struct {
	Label string
	Count int
}

// ConditionShare is one slice of the loan condition donut.
type ConditionShare struct {
	Condition string
	Count     int
	Percent   float64 // 0-100
}

// HistogramBin is one loan-amount bin, split by term.
type HistogramBin struct {
	Lower  float64
	Upper  float64
	ByTerm map[string]int
}

// Total returns the bin count across all terms.
func (b HistogramBin) Total() int {
	n := 0
	for _, c := range b.ByTerm {
		n += c
	}
	return n
}

// Histogram is the loan-amount distribution for one condition.
type Histogram struct {
	Terms []string // sorted
	Bins  []HistogramBin
}

// BoxStats is the five-number summary of loan amounts for one purpose/term group.
type BoxStats struct {
	Purpose      string
	Term         string
	Count        int
	Min          float64
	Q1           float64
	Median       float64
	Q3           float64
	Max          float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// BoxPlot groups box statistics by purpose (x axis) and term (color).
type BoxPlot struct {
	Purposes []string // sorted
	Terms    []string // sorted
	Boxes    []BoxStats
}
