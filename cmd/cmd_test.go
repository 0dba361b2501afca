package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/loandash/internal/dataset"
	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/store"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,loan_amount,interest_rate,issue_date,issue_weekday,purpose,grade,term,loan_condition
1,100,5.0,2024-01-01,Monday,debt_consolidation,A,36 months,Good Loan
2,200,10.0,2024-01-02,Tuesday,credit_card,B,60 months,Bad Loan
3,300,7.5,2024-01-02,Tuesday,car,A,36 months,Good Loan
`

func writeSample(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "loans.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		flagData, flagCondition, flagQuiet = "", "", false
		flagImportOut = ""
		for _, c := range rootCmd.Commands() {
			c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		}
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestImportWritesSnapshot(t *testing.T) {
	csvPath := writeSample(t)
	out := filepath.Join(t.TempDir(), "loans.db")

	require.NoError(t, execute(t, "import", "-q", "--data", csvPath, "--out", out))

	snap, err := store.OpenReadOnly(out)
	require.NoError(t, err)
	defer func() { _ = snap.Close() }()

	n, err := snap.LoanCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	loans, err := dataset.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "debt consolidation", loans[0].Purpose)
}

func TestUnknownConditionRejected(t *testing.T) {
	csvPath := writeSample(t)
	err := execute(t, "summary", "-q", "--data", csvPath, "--condition", "Late Loan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Late Loan")
}

func TestConditionDefaultsFromConfig(t *testing.T) {
	csvPath := writeSample(t)
	require.NoError(t, execute(t, "analysis", "-q", "--data", csvPath))
	assert.Equal(t, model.GoodLoan, flagCondition)
}
