// Package store provides a SQLite snapshot of the cleaned loan table.
//
// A snapshot is a pre-serialized copy of the dataset: the import command
// writes it once and every render pass reads it back in full.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/theirongolddev/loandash/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Snapshot provides SQLite-backed loan table storage.
type Snapshot struct {
	db *sql.DB
}

// Info describes when and from where a snapshot was written.
type Info struct {
	Source     string
	Rows       int
	ImportedAt time.Time
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Snapshot, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Snapshot{db: db}, nil
}

// OpenReadOnly opens an existing snapshot without creating or migrating it.
func OpenReadOnly(dbPath string) (*Snapshot, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	return &Snapshot{db: db}, nil
}

// Close closes the snapshot database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// ReplaceLoans swaps the stored table for loans in a single transaction.
func (s *Snapshot) ReplaceLoans(loans []model.Loan, source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM loans"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO loans
		(row_num, id, loan_amount, interest_rate, issue_date, issue_weekday,
		 purpose, grade, term, loan_condition)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, l := range loans {
		_, err = stmt.Exec(i+1, l.ID, l.LoanAmount, l.InterestRate,
			l.IssueDate.Format("2006-01-02"), l.IssueWeekday,
			l.Purpose, l.Grade, l.Term, l.LoanCondition)
		if err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}

	meta := map[string]string{
		"source":      source,
		"rows":        strconv.Itoa(len(loans)),
		"imported_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO snapshot_info (key, value) VALUES (?, ?)`, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Records returns the stored table as string records, header first,
// in file order.
func (s *Snapshot) Records() ([][]string, error) {
	rows, err := s.db.Query(`SELECT
		id, loan_amount, interest_rate, issue_date, issue_weekday,
		purpose, grade, term, loan_condition
		FROM loans ORDER BY row_num`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := [][]string{append([]string(nil), snapshotColumns...)}
	for rows.Next() {
		var (
			id, issueDate, weekday, purpose, grade, term, condition string
			amount, rate                                            float64
		)
		if err := rows.Scan(&id, &amount, &rate, &issueDate, &weekday,
			&purpose, &grade, &term, &condition); err != nil {
			return nil, err
		}
		records = append(records, []string{
			id,
			strconv.FormatFloat(amount, 'f', -1, 64),
			strconv.FormatFloat(rate, 'f', -1, 64),
			issueDate, weekday, purpose, grade, term, condition,
		})
	}
	return records, rows.Err()
}

// LoanCount returns the number of stored loans.
func (s *Snapshot) LoanCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM loans").Scan(&count)
	return count, err
}

// Info returns the snapshot metadata written by the last ReplaceLoans.
func (s *Snapshot) Info() (Info, error) {
	rows, err := s.db.Query("SELECT key, value FROM snapshot_info")
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = rows.Close() }()

	var info Info
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Info{}, err
		}
		switch k {
		case "source":
			info.Source = v
		case "rows":
			info.Rows, _ = strconv.Atoi(v)
		case "imported_at":
			info.ImportedAt, _ = time.Parse(time.RFC3339, v)
		}
	}
	return info, rows.Err()
}
