package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/loandash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoans() []model.Loan {
	day := time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)
	return []model.Loan{
		{ID: "1", LoanAmount: 1000, InterestRate: 7.25, IssueDate: day, IssueWeekday: "Monday",
			Purpose: "car", Grade: "A", Term: "36 months", LoanCondition: model.GoodLoan},
		{ID: "2", LoanAmount: 2500.5, InterestRate: 13, IssueDate: day.AddDate(0, 0, 1), IssueWeekday: "Tuesday",
			Purpose: "credit card", Grade: "C", Term: "60 months", LoanCondition: model.BadLoan},
	}
}

func TestReplaceAndReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap", "loans.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.ReplaceLoans(testLoans(), "loans.csv"))

	recs, err := s.Records()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, snapshotColumns, recs[0])
	assert.Equal(t, []string{"2", "2500.5", "13", "2015-01-06", "Tuesday",
		"credit card", "C", "60 months", "Bad Loan"}, recs[2])

	n, err := s.LoanCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReplaceOverwrites(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "loans.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.ReplaceLoans(testLoans(), "a.csv"))
	require.NoError(t, s.ReplaceLoans(testLoans()[:1], "b.csv"))

	n, err := s.LoanCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	info, err := s.Info()
	require.NoError(t, err)
	assert.Equal(t, "b.csv", info.Source)
	assert.Equal(t, 1, info.Rows)
	assert.False(t, info.ImportedAt.IsZero())
}

func TestOpenReadOnlyMissing(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestOpenReadOnlyReadsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceLoans(testLoans(), "loans.csv"))
	require.NoError(t, s.Close())

	ro, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer func() { _ = ro.Close() }()

	recs, err := ro.Records()
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}
