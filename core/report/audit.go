package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"nc-usersync/core/sync"
)

// AuditWriter appends one CSV row per outcome. Passwords never appear in the
// audit log.
type AuditWriter struct {
	file   *os.File
	writer *csv.Writer
	path   string
	// writeErr holds the first failed row write, with the affected username.
	writeErr error
}

// NewAuditWriter creates the output directory if needed and opens a
// timestamped audit file inside it.
func NewAuditWriter(outputDir string, now time.Time) (*AuditWriter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("audit-%s.csv", now.Format("2006-01-02-150405")))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"timestamp", "username", "operation", "success", "changes", "detail"}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write audit header: %w", err)
	}

	return &AuditWriter{file: file, writer: writer, path: path}, nil
}

// Path returns the location of the audit file.
func (a *AuditWriter) Path() string {
	return a.path
}

func (a *AuditWriter) Record(o sync.Outcome) {
	err := a.writer.Write([]string{
		time.Now().Format(time.RFC3339),
		o.Username,
		string(o.Op),
		strconv.FormatBool(o.Success),
		strings.Join(o.Changes, "|"),
		o.Detail,
	})
	if err != nil && a.writeErr == nil {
		a.writeErr = fmt.Errorf("failed to write audit row for %s: %w", o.Username, err)
	}
}

// Close flushes and closes the audit file.
func (a *AuditWriter) Close() error {
	a.writer.Flush()
	if a.writeErr != nil {
		a.file.Close()
		return a.writeErr
	}
	if err := a.writer.Error(); err != nil {
		a.file.Close()
		return fmt.Errorf("failed to flush audit file: %w", err)
	}
	return a.file.Close()
}
