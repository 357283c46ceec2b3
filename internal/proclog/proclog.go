// Package proclog records per-package processing history. The log is
// append-only: every stage outcome becomes a new row and nothing is ever
// rewritten, so the error count for a package is just a scan.
package proclog

import (
	"fmt"
	"strings"
	"time"

	"github.com/omarvelez-pr/quote-verifier/constants"
)

// maxMessageRunes caps stored messages so one runaway stderr dump cannot
// bloat the log.
const maxMessageRunes = 100

// Entry is one row of processing history.
type Entry struct {
	PackageID string
	Stage     constants.Stage
	Outcome   constants.Outcome
	Timestamp time.Time
	Message   string
	Attempt   int
}

// Log is the append-only processing history store.
type Log interface {
	Append(e Entry) error
	// CountErrors returns how many ERROR rows exist for this package.
	CountErrors(packageID string) (int, error)
	// LastAttempt returns the highest attempt recorded for a package at a
	// given stage, 0 when the stage never ran.
	LastAttempt(packageID string, stage constants.Stage) (int, error)
	Close() error
}

// Open builds the configured backend. backend is "csv" or "sqlite".
func Open(backend, path string) (Log, error) {
	switch backend {
	case "", "csv":
		return OpenCSV(path)
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// sanitizeMessage makes a message safe for a single delimited row and caps
// its length.
func sanitizeMessage(msg string) string {
	msg = strings.NewReplacer(";", ",", "\n", " ", "\r", " ").Replace(msg)
	runes := []rune(msg)
	if len(runes) > maxMessageRunes {
		msg = string(runes[:maxMessageRunes])
	}
	return strings.TrimSpace(msg)
}
