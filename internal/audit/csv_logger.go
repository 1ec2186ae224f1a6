package audit

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CSVLogger appends records to a CSV file, syncing after every row so a
// crash never loses records for leads that were already processed.
type CSVLogger struct {
	file *os.File
	w    *csv.Writer
	path string
	now  func() time.Time
}

var _ Logger = (*CSVLogger)(nil)

// OpenCSV opens path for appending and writes the header when the file is new or empty.
func OpenCSV(path string) (*CSVLogger, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audit: stat %s: %w", path, err)
	}

	l := &CSVLogger{
		file: f,
		w:    csv.NewWriter(f),
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
	}
	if info.Size() == 0 {
		if err := l.writeRow(Header); err != nil {
			f.Close()
			return nil, err
		}
	}
	return l, nil
}

// Path returns the file the logger appends to.
func (l *CSVLogger) Path() string {
	return l.path
}

// Log appends one record. A zero timestamp is filled with the current UTC time.
func (l *CSVLogger) Log(ctx context.Context, rec Record) error {
	if l == nil || l.file == nil {
		return errors.New("audit: logger is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now()
	}
	return l.writeRow(rec.Row())
}

func (l *CSVLogger) writeRow(row []string) error {
	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("audit: write row: %w", err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("audit: flush: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("audit: sync: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *CSVLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.w.Flush()
	flushErr := l.w.Error()
	closeErr := l.file.Close()
	l.file = nil
	if flushErr != nil {
		return fmt.Errorf("audit: flush: %w", flushErr)
	}
	return closeErr
}
