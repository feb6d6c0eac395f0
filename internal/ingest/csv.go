// Package ingest reads QC gate CSV exports into raw records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"qagate/internal/models"
)

// Ingestion errors. Only structural problems are fatal; bad rows degrade.
var (
	ErrEmptyInput       = errors.New("input contains no header row")
	ErrNoIssueKeyColumn = errors.New("no issue key column found in header")
)

// columnSetters maps export column names (whitespace-normalized) to raw
// record fields. Columns not listed here are ignored; the export carries
// dozens of fields the pipeline never looks at.
var columnSetters = map[string]func(*models.RawRecord, string){
	"Issue key":                        func(r *models.RawRecord, v string) { r.IssueKey = v },
	"Summary":                          func(r *models.RawRecord, v string) { r.Summary = v },
	"Assignee":                         func(r *models.RawRecord, v string) { r.Assignee = v },
	"Created":                          func(r *models.RawRecord, v string) { r.Created = v },
	"Custom field (Start Quantity)":    func(r *models.RawRecord, v string) { r.StartQuantity = v },
	"Custom field (Rejected Quantity)": func(r *models.RawRecord, v string) { r.RejectedQuantity = v },
	"Custom field (Conclusion)":        func(r *models.RawRecord, v string) { r.Conclusion = v },
	"Custom field (Rejected Sensors)":  func(r *models.RawRecord, v string) { r.RejectedSensors = v },
}

// Result is the outcome of reading one export.
type Result struct {
	Records []models.RawRecord
	Skipped int // rows dropped for a missing issue key or a malformed line
}

// ReadFile reads a CSV export from disk.
func ReadFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	res, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return res, nil
}

// Read parses a CSV export. The header row decides column positions, so
// exports with reordered or extra columns load the same way. Rows without an
// issue key are counted as skipped, not errors; a missing header or issue key
// column aborts the whole read.
func Read(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	setters := make(map[int]func(*models.RawRecord, string))
	issueKeyCol := -1

	for i, name := range header {
		name = normalizeHeader(name)
		if setter, ok := columnSetters[name]; ok {
			setters[i] = setter
		}

		if name == "Issue key" {
			issueKeyCol = i
		}
	}

	if issueKeyCol == -1 {
		return nil, ErrNoIssueKeyColumn
	}

	res := &Result{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			// A malformed line is one bad row, not a bad file.
			res.Skipped++

			continue
		}

		var raw models.RawRecord

		for i, cell := range record {
			if setter, ok := setters[i]; ok {
				setter(&raw, cell)
			}
		}

		if strings.TrimSpace(raw.IssueKey) == "" {
			res.Skipped++

			continue
		}

		res.Records = append(res.Records, raw)
	}

	return res, nil
}

// normalizeHeader collapses runs of whitespace and trims the ends, so headers
// mangled by spreadsheet round-trips still match.
func normalizeHeader(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
