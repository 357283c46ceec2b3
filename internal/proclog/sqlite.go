package proclog

import (
	"database/sql"
	"fmt"

	"github.com/omarvelez-pr/quote-verifier/constants"

	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS processing_log (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	package_id TEXT NOT NULL,
	stage      TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	ts         TEXT NOT NULL,
	message    TEXT NOT NULL,
	attempt    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processing_log_pkg ON processing_log (package_id, outcome);
`

// SQLiteLog stores history rows in an embedded database. INSERT-only: the
// table never sees UPDATE or DELETE.
type SQLiteLog struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the log database at path.
func OpenSQLite(path string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite log %s: %w", path, err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite log schema: %w", err)
	}
	return &SQLiteLog{db: db}, nil
}

func (l *SQLiteLog) Append(e Entry) error {
	_, err := l.db.Exec(
		`INSERT INTO processing_log (package_id, stage, outcome, ts, message, attempt) VALUES (?, ?, ?, ?, ?, ?)`,
		e.PackageID,
		string(e.Stage),
		string(e.Outcome),
		e.Timestamp.Format("2006-01-02T15:04:05"),
		sanitizeMessage(e.Message),
		e.Attempt,
	)
	if err != nil {
		return fmt.Errorf("append sqlite log row: %w", err)
	}
	return nil
}

func (l *SQLiteLog) CountErrors(packageID string) (int, error) {
	var n int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM processing_log WHERE package_id = ? AND outcome = ?`,
		packageID, string(constants.OutcomeError),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sqlite log errors: %w", err)
	}
	return n, nil
}

func (l *SQLiteLog) LastAttempt(packageID string, stage constants.Stage) (int, error) {
	var n int
	err := l.db.QueryRow(
		`SELECT COALESCE(MAX(attempt), 0) FROM processing_log WHERE package_id = ? AND stage = ?`,
		packageID, string(stage),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("read sqlite last attempt: %w", err)
	}
	return n, nil
}

func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
