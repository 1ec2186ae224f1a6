package leads

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
)

// Column names expected in the CRM export header.
const (
	ColumnName            = "Name"
	ColumnPhone           = "Phone"
	ColumnLastMessage     = "LastMessage"
	ColumnLastContactDate = "LastContactDate"
)

var requiredColumns = []string{ColumnName, ColumnPhone, ColumnLastContactDate}

// contactDateLayouts are tried in order; the first match wins.
var contactDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ReadFile opens the CRM export at path and parses every data row.
func ReadFile(path string) ([]Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("leads: open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a CSV stream with a header row into leads. Rows with an
// unparseable LastContactDate are still returned, with LastContact left nil,
// so the caller decides how to report them.
func Read(r io.Reader) ([]Lead, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("leads: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var out []Lead
	row := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return out, fmt.Errorf("leads: read row %d: %w", row, err)
		}
		if isBlankRecord(record) {
			continue
		}

		lead := Lead{
			Row:            row,
			Name:           cell(record, ColumnName),
			Phone:          cell(record, ColumnPhone),
			LastMessage:    cell(record, ColumnLastMessage),
			RawLastContact: cell(record, ColumnLastContactDate),
		}
		if ts, ok := ParseContactDate(lead.RawLastContact); ok {
			lead.LastContact = &ts
		}
		out = append(out, lead)
	}
	return out, nil
}

// ParseContactDate parses a LastContactDate cell. Empty cells and the usual
// spreadsheet null markers are reported as unparseable.
func ParseContactDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "nan", "nat", "null", "none", "n/a":
		return time.Time{}, false
	}
	for _, layout := range contactDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
