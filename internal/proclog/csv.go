package proclog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/omarvelez-pr/quote-verifier/constants"
)

const csvHeader = "package_id;stage;outcome;timestamp;message;attempt"

// CSVLog appends semicolon-delimited rows to a single file. The file is
// opened O_APPEND so concurrent runs interleave rows without corrupting them.
type CSVLog struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// OpenCSV opens (or creates, with header) the log file at path.
func OpenCSV(path string) (*CSVLog, error) {
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open processing log %s: %w", path, err)
	}
	if os.IsNotExist(statErr) {
		if _, err := f.WriteString(csvHeader + "\n"); err != nil {
			f.Close()
			return nil, fmt.Errorf("write log header: %w", err)
		}
	}
	return &CSVLog{path: path, f: f}, nil
}

func (l *CSVLog) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := strings.Join([]string{
		sanitizeMessage(e.PackageID),
		string(e.Stage),
		string(e.Outcome),
		e.Timestamp.Format("2006-01-02T15:04:05"),
		sanitizeMessage(e.Message),
		strconv.Itoa(e.Attempt),
	}, ";")
	if _, err := l.f.WriteString(row + "\n"); err != nil {
		return fmt.Errorf("append log row: %w", err)
	}
	return nil
}

func (l *CSVLog) CountErrors(packageID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	count := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		cols := strings.Split(sc.Text(), ";")
		if len(cols) < 3 {
			continue
		}
		if cols[0] == packageID && cols[2] == string(constants.OutcomeError) {
			count++
		}
	}
	return count, sc.Err()
}

func (l *CSVLog) LastAttempt(packageID string, stage constants.Stage) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	last := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		cols := strings.Split(sc.Text(), ";")
		if len(cols) < 6 {
			continue
		}
		if cols[0] != packageID || cols[1] != string(stage) {
			continue
		}
		if n, err := strconv.Atoi(cols[5]); err == nil && n > last {
			last = n
		}
	}
	return last, sc.Err()
}

func (l *CSVLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
