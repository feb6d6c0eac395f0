// Package export renders cleaned rows and failure records as CSV payloads
// and a markdown summary report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"qagate/internal/models"
)

var gateHeader = []string{
	"issue_key", "summary", "assignee", "created", "year_week", "month",
	"process_step", "in_vitro", "start_quantity", "rejected_quantity",
	"passed_quantity", "yield_pct", "outlier",
}

var failureHeader = []string{
	"issue_key", "created", "year_week", "process_step", "assignee",
	"sensor_id", "failure_mode",
}

// GateRecordsCSV writes cleaned gate rows as CSV.
func GateRecordsCSV(w io.Writer, rows []models.GateRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(gateHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range rows {
		row := &rows[i]

		record := []string{
			row.IssueKey,
			row.Summary,
			row.Assignee,
			formatTime(row.CreatedAt),
			row.YearWeek,
			row.Month,
			row.ProcessStep,
			strconv.FormatBool(row.InVitro),
			formatQty(row.StartQty),
			formatQty(row.RejectedQty),
			formatQty(row.PassedQty),
			strconv.FormatFloat(row.YieldPct, 'f', 2, 64),
			strconv.FormatBool(row.Outlier),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.IssueKey, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// FailuresCSV writes extracted failure records as CSV.
func FailuresCSV(w io.Writer, failures []models.FailureRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(failureHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range failures {
		f := &failures[i]

		record := []string{
			f.IssueKey,
			formatTime(f.CreatedAt),
			f.YearWeek,
			f.ProcessStep,
			f.Assignee,
			f.SensorID,
			f.FailureMode,
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write failure for %s: %w", f.IssueKey, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}

	return ts.Format(time.RFC3339)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
