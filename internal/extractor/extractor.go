// Package extractor pulls individual failure entries out of wiki-markup
// tables embedded in the free-text fields of gate records.
package extractor

import (
	"strings"

	"qagate/internal/models"
)

// Unresolved is the sentinel for a table column that could not be mapped.
// Rows whose failure mode stays unresolved produce no record at all.
const Unresolved = "Unknown"

// Default header synonym lists, in priority order.
var (
	DefaultSensorHeaders  = []string{"sensor id", "sensor", "sheet id", "sensor_id"}
	DefaultFailureHeaders = []string{"failure mode", "failure modes", "allocation"}
)

// Extractor scans cleaned gate rows for embedded failure tables.
type Extractor struct {
	sensorHeaders  []string
	failureHeaders []string
}

// New creates an extractor with the given header synonym lists. Nil lists
// fall back to the defaults.
func New(sensorHeaders, failureHeaders []string) *Extractor {
	if sensorHeaders == nil {
		sensorHeaders = DefaultSensorHeaders
	}

	if failureHeaders == nil {
		failureHeaders = DefaultFailureHeaders
	}

	return &Extractor{
		sensorHeaders:  sensorHeaders,
		failureHeaders: failureHeaders,
	}
}

// Extract returns one failure record per resolvable table row found in the
// conclusion and rejected-sensors fields. Output order follows input row
// order, then field order, then in-table order. The pass is ephemeral: it is
// recomputed on every analysis cycle and never persisted.
func (e *Extractor) Extract(rows []models.GateRecord) []models.FailureRecord {
	var out []models.FailureRecord

	for i := range rows {
		row := &rows[i]
		out = append(out, e.extractField(row, row.Conclusion)...)
		out = append(out, e.extractField(row, row.RejectedSensors)...)
	}

	return out
}

// extractField parses one free-text field. A ||...|| line installs a new
// header set; |...| lines are data rows only while a header set is active.
// Multiple tables in one field each reset the headers.
func (e *Extractor) extractField(row *models.GateRecord, text string) []models.FailureRecord {
	var records []models.FailureRecord

	var headers []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "||") && strings.HasSuffix(line, "||"):
			headers = parseHeaderLine(line)

		case strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") && len(headers) > 0:
			cells := parseDataLine(line)
			if len(cells) < 2 {
				continue
			}

			sensorID, failureMode := e.resolveColumns(headers, cells)
			if failureMode == Unresolved {
				continue
			}

			records = append(records, models.FailureRecord{
				IssueKey:    row.IssueKey,
				CreatedAt:   row.CreatedAt,
				Week:        row.Week,
				YearWeek:    row.YearWeek,
				ProcessStep: row.ProcessStep,
				Assignee:    row.Assignee,
				SensorID:    sensorID,
				FailureMode: failureMode,
			})
		}
	}

	return records
}

// parseHeaderLine splits a ||a||b|| line into cleaned header labels: trimmed,
// empties dropped, emphasis markup stripped, lower-cased. A label that is
// only emphasis markup survives as an empty string and still occupies its
// column position.
func parseHeaderLine(line string) []string {
	var headers []string

	for _, cell := range strings.Split(line, "||") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}

		headers = append(headers, strings.ToLower(strings.ReplaceAll(cell, "*", "")))
	}

	return headers
}

// parseDataLine splits a |x|y| line into trimmed, non-empty cells.
func parseDataLine(line string) []string {
	var cells []string

	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}

	return cells
}
