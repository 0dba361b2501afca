package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS loans (
    row_num              INTEGER PRIMARY KEY,
    id                   TEXT NOT NULL,
    loan_amount          REAL NOT NULL,
    interest_rate        REAL NOT NULL,
    issue_date           TEXT NOT NULL,
    issue_weekday        TEXT NOT NULL,
    purpose              TEXT NOT NULL,
    grade                TEXT NOT NULL,
    term                 TEXT NOT NULL,
    loan_condition       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_info (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_loans_condition ON loans(loan_condition);
CREATE INDEX IF NOT EXISTS idx_loans_issue_date ON loans(issue_date);
`

// snapshotColumns is the column order returned by Records.
var snapshotColumns = []string{
	"id", "loan_amount", "interest_rate", "issue_date", "issue_weekday",
	"purpose", "grade", "term", "loan_condition",
}
