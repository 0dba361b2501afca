package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/loandash/internal/dataset"
	"github.com/theirongolddev/loandash/internal/model"
)

// LoadResult holds the output of one dataset read.
type LoadResult struct {
	Path      string
	Loans     []model.Loan
	GoodLoans int
	BadLoans  int
	Other     int // rows whose condition is neither known value
	Elapsed   time.Duration
}

// Load reads the dataset at path and tallies loans per condition.
func Load(path string) (*LoadResult, error) {
	start := time.Now()

	loans, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	result := &LoadResult{Path: path, Loans: loans}
	for _, l := range loans {
		switch l.LoanCondition {
		case model.GoodLoan:
			result.GoodLoans++
		case model.BadLoan:
			result.BadLoans++
		default:
			result.Other++
		}
	}
	result.Elapsed = time.Since(start)
	return result, nil
}
