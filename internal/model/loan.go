// Package model defines domain types for loandash records and metrics.
package model

import "time"

// Loan conditions. The dataset is pre-classified into exactly these two values.
const (
	GoodLoan = "Good Loan"
	BadLoan  = "Bad Loan"
)

// Conditions lists the selectable loan conditions in display order.
var Conditions = []string{GoodLoan, BadLoan}

// Weekdays is the fixed category order for the issue weekday chart.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Loan is one row of the cleaned loan dataset.
type Loan struct {
	ID            string
	LoanAmount    float64
	InterestRate  float64 // percent, 7.5 means 7.5%
	IssueDate     time.Time
	IssueWeekday  string
	Purpose       string
	Grade         string
	Term          string
	LoanCondition string
}

// IsCondition reports whether s is one of the known loan conditions.
func IsCondition(s string) bool {
	for _, c := range Conditions {
		if c == s {
			return true
		}
	}
	return false
}
