// Package runlog keeps a CSV history of extraction runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/summary"
)

// Entry is one extraction run.
type Entry struct {
	Timestamp   time.Time
	Source      string
	Rows        int
	NetSalary   string
	Food        decimal.Decimal
	Transport   decimal.Decimal
	Thirteenth  decimal.Decimal
	Conflict    bool
	Diagnostics int
}

// Header is the CSV header for extraction-log.csv.
const Header = "timestamp,source,rows,net_salary,food,transport,thirteenth,conflict,diagnostics"

// FileName is the log path relative to the log root.
const FileName = "logs/extraction-log.csv"

const (
	numFields      = 9
	colTimestamp   = 0
	colSource      = 1
	colRows        = 2
	colNetSalary   = 3
	colFood        = 4
	colTransport   = 5
	colThirteenth  = 6
	colConflict    = 7
	colDiagnostics = 8
)

// NewEntry summarizes one run over source.
func NewEntry(at time.Time, source string, res model.ExtractionResult, sum summary.Summary, conflict bool) Entry {
	return Entry{
		Timestamp:   at,
		Source:      source,
		Rows:        len(res.Rows),
		NetSalary:   res.NetSalaryText(""),
		Food:        sum.Sum(model.CategoryFoodOrBasket),
		Transport:   sum.Sum(model.CategoryTransport),
		Thirteenth:  sum.Sum(model.CategoryThirteenthSalary),
		Conflict:    conflict,
		Diagnostics: len(res.Diagnostics),
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colRows] = strconv.Itoa(e.Rows)
	row[colNetSalary] = e.NetSalary
	row[colFood] = e.Food.StringFixed(2)
	row[colTransport] = e.Transport.StringFixed(2)
	row[colThirteenth] = e.Thirteenth.StringFixed(2)
	row[colConflict] = strconv.FormatBool(e.Conflict)
	row[colDiagnostics] = strconv.Itoa(e.Diagnostics)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}
	diags, err := strconv.Atoi(record[colDiagnostics])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing diagnostics %q: %w", record[colDiagnostics], err)
	}
	conflict, err := strconv.ParseBool(record[colConflict])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing conflict %q: %w", record[colConflict], err)
	}

	e := Entry{
		Timestamp:   ts,
		Source:      record[colSource],
		Rows:        rows,
		NetSalary:   record[colNetSalary],
		Conflict:    conflict,
		Diagnostics: diags,
	}
	for _, f := range []struct {
		col int
		dst *decimal.Decimal
	}{
		{colFood, &e.Food},
		{colTransport, &e.Transport},
		{colThirteenth, &e.Thirteenth},
	} {
		d, err := decimal.NewFromString(record[f.col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing amount %q: %w", record[f.col], err)
		}
		*f.dst = d
	}
	return e, nil
}

// Append writes entries to <root>/logs/extraction-log.csv, creating the file
// and header if needed.
func Append(root string, entries []Entry) error {
	path := filepath.Join(root, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening extraction log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/extraction-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening extraction log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading extraction log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
