// Package dataset reads the cleaned loan table into typed loan records.
//
// Both supported encodings (CSV and a SQLite snapshot) are funneled through a
// gota DataFrame so that column checks and the purpose rewrite happen in one
// place regardless of where the rows came from.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/loandash/internal/model"
	"github.com/theirongolddev/loandash/internal/store"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the cleaned dataset.
const (
	ColID            = "id"
	ColLoanAmount    = "loan_amount"
	ColInterestRate  = "interest_rate"
	ColIssueDate     = "issue_date"
	ColIssueWeekday  = "issue_weekday"
	ColPurpose       = "purpose"
	ColGrade         = "grade"
	ColTerm          = "term"
	ColLoanCondition = "loan_condition"
)

// RequiredColumns lists every column the dashboard reads.
var RequiredColumns = []string{
	ColID, ColLoanAmount, ColInterestRate, ColIssueDate, ColIssueWeekday,
	ColPurpose, ColGrade, ColTerm, ColLoanCondition,
}

var (
	// ErrEmptyDataset is returned when the table has no rows.
	ErrEmptyDataset = errors.New("dataset: no loan rows")
	// ErrMissingColumn is returned (wrapped with the column name) when a required column is absent.
	ErrMissingColumn = errors.New("dataset: missing column")
	// ErrUnsupportedFormat is returned for file extensions we cannot read.
	ErrUnsupportedFormat = errors.New("dataset: unsupported file format")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// Load reads the dataset at path and returns its normalized rows.
// The encoding is chosen by extension: .csv, or .db/.sqlite for a snapshot
// written by the import command.
func Load(path string) ([]model.Loan, error) {
	df, err := LoadFrame(path)
	if err != nil {
		return nil, err
	}
	return Decode(df)
}

// LoadFrame reads the dataset at path into a validated, normalized DataFrame.
func LoadFrame(path string) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", "":
		f, err := os.Open(path) //nolint:gosec // dataset path is user configuration
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("opening dataset: %w", err)
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f)

	case ".db", ".sqlite", ".sqlite3":
		snap, err := store.OpenReadOnly(path)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("opening snapshot: %w", err)
		}
		defer func() { _ = snap.Close() }()

		records, err := snap.Records()
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("reading snapshot: %w", err)
		}
		return FromRecords(records)

	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV parses a CSV table with a header row.
func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reading table: %w", err)
	}
	if err := peekCSV(raw); err != nil {
		return dataframe.DataFrame{}, err
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	return prepare(df)
}

// FromRecords builds a table from string records; the first record is the header.
func FromRecords(records [][]string) (dataframe.DataFrame, error) {
	if len(records) == 0 {
		return dataframe.DataFrame{}, ErrEmptyDataset
	}
	if err := CheckColumns(records[0]); err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(records) == 1 {
		return dataframe.DataFrame{}, ErrEmptyDataset
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	return prepare(df)
}

// peekCSV checks the header and that at least one data row follows it.
// gota reports both a short header and a header-only file as the same
// generic load error.
func peekCSV(raw []byte) error {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ErrEmptyDataset
	}
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	if err := CheckColumns(header); err != nil {
		return err
	}
	if _, err := cr.Read(); errors.Is(err, io.EOF) {
		return ErrEmptyDataset
	}
	return nil
}

func prepare(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, fmt.Errorf("reading table: %w", df.Err)
	}
	if err := CheckColumns(df.Names()); err != nil {
		return df, err
	}
	if df.Nrow() == 0 {
		return df, ErrEmptyDataset
	}

	df = df.Select(RequiredColumns)
	if df.Err != nil {
		return df, fmt.Errorf("selecting columns: %w", df.Err)
	}

	df = NormalizePurpose(df)
	if df.Err != nil {
		return df, fmt.Errorf("normalizing purpose: %w", df.Err)
	}
	return df, nil
}

// CheckColumns reports the first required column missing from names.
func CheckColumns(names []string) error {
	have := make(map[string]struct{}, len(names))
	for _, n := range names {
		have[strings.TrimSpace(n)] = struct{}{}
	}
	for _, col := range RequiredColumns {
		if _, ok := have[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}

// NormalizePurpose replaces underscores with spaces in the purpose column,
// e.g. "debt_consolidation" -> "debt consolidation".
func NormalizePurpose(df dataframe.DataFrame) dataframe.DataFrame {
	raw := df.Col(ColPurpose).Records()
	cleaned := make([]string, len(raw))
	for i, p := range raw {
		cleaned[i] = NormalizePurposeValue(p)
	}
	return df.Mutate(series.New(cleaned, series.String, ColPurpose))
}

// NormalizePurposeValue applies the purpose rewrite to a single value.
func NormalizePurposeValue(p string) string {
	return strings.ReplaceAll(p, "_", " ")
}

// Decode converts a prepared table into loan records.
func Decode(df dataframe.DataFrame) ([]model.Loan, error) {
	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	cols := make(map[string][]string, len(RequiredColumns))
	for _, name := range RequiredColumns {
		cols[name] = df.Col(name).Records()
	}

	loans := make([]model.Loan, df.Nrow())
	for i := range loans {
		amount, err := parseNumber(cols[ColLoanAmount][i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", i+1, ColLoanAmount, err)
		}
		rate, err := parseNumber(cols[ColInterestRate][i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", i+1, ColInterestRate, err)
		}
		issued, err := ParseDate(cols[ColIssueDate][i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", i+1, ColIssueDate, err)
		}

		weekday := cell(cols[ColIssueWeekday][i])
		if weekday == "" {
			weekday = issued.Weekday().String()
		}

		loans[i] = model.Loan{
			ID:            cell(cols[ColID][i]),
			LoanAmount:    amount,
			InterestRate:  rate,
			IssueDate:     issued,
			IssueWeekday:  weekday,
			Purpose:       cols[ColPurpose][i],
			Grade:         strings.TrimSpace(cols[ColGrade][i]),
			Term:          strings.TrimSpace(cols[ColTerm][i]),
			LoanCondition: strings.TrimSpace(cols[ColLoanCondition][i]),
		}
	}
	return loans, nil
}

// cell trims a string value and blanks the markers gota loads as missing
// ("NA", "NaN", "<nil>" all read back as "NaN").
func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "NaN" {
		return ""
	}
	return s
}

// ParseDate parses an issue date in any of the accepted layouts and drops
// the time of day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

// Records converts loans back into string records with a header row,
// in RequiredColumns order.
func Records(loans []model.Loan) [][]string {
	out := make([][]string, 0, len(loans)+1)
	out = append(out, append([]string(nil), RequiredColumns...))
	for _, l := range loans {
		out = append(out, []string{
			l.ID,
			strconv.FormatFloat(l.LoanAmount, 'f', -1, 64),
			strconv.FormatFloat(l.InterestRate, 'f', -1, 64),
			l.IssueDate.Format("2006-01-02"),
			l.IssueWeekday,
			l.Purpose,
			l.Grade,
			l.Term,
			l.LoanCondition,
		})
	}
	return out
}
