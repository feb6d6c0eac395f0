package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"qagate/internal/models"
)

func TestGateRecordsCSV(t *testing.T) {
	rows := []models.GateRecord{
		{
			RawRecord: models.RawRecord{
				IssueKey: "QA-1",
				Summary:  "LN-C12345",
				Assignee: "Dana",
			},
			CreatedAt:   time.Date(2026, 1, 26, 14, 35, 0, 0, time.UTC),
			YearWeek:    "2026-W05",
			Month:       "2026-01",
			ProcessStep: "Final Inspection",
			StartQty:    100,
			RejectedQty: 4,
			PassedQty:   96,
			YieldPct:    96,
		},
	}

	var buf bytes.Buffer
	if err := GateRecordsCSV(&buf, rows); err != nil {
		t.Fatalf("GateRecordsCSV returned unexpected error: %v", err)
	}

	got, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		gateHeader,
		{
			"QA-1", "LN-C12345", "Dana", "2026-01-26T14:35:00Z", "2026-W05",
			"2026-01", "Final Inspection", "false", "100", "4", "96", "96.00",
			"false",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestGateRecordsCSV_ZeroTimestampIsEmpty(t *testing.T) {
	rows := []models.GateRecord{
		{RawRecord: models.RawRecord{IssueKey: "QA-9"}, ProcessStep: "Others"},
	}

	var buf bytes.Buffer
	if err := GateRecordsCSV(&buf, rows); err != nil {
		t.Fatalf("GateRecordsCSV returned unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if created := records[1][3]; created != "" {
		t.Errorf("created column = %q, want empty for unparsed timestamp", created)
	}
}

func TestFailuresCSV(t *testing.T) {
	failures := []models.FailureRecord{
		{
			IssueKey:    "QA-1",
			CreatedAt:   time.Date(2026, 1, 26, 14, 35, 0, 0, time.UTC),
			YearWeek:    "2026-W05",
			ProcessStep: "Final Inspection",
			Assignee:    "Dana",
			SensorID:    "S001",
			FailureMode: "Cracked",
		},
	}

	var buf bytes.Buffer
	if err := FailuresCSV(&buf, failures); err != nil {
		t.Fatalf("FailuresCSV returned unexpected error: %v", err)
	}

	got, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		failureHeader,
		{"QA-1", "2026-01-26T14:35:00Z", "2026-W05", "Final Inspection", "Dana", "S001", "Cracked"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestFailuresCSV_EmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := FailuresCSV(&buf, nil); err != nil {
		t.Fatalf("FailuresCSV returned unexpected error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "issue_key,") {
		t.Errorf("output missing header: %q", buf.String())
	}
}
