package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"qagate/internal/analytics"
)

func sampleReport() ReportData {
	return ReportData{
		GeneratedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		Summary: analytics.Summary{
			Records:         12,
			FailureEvents:   5,
			TotalStart:      1200,
			TotalRejected:   60,
			OverallYieldPct: 95,
			YieldStatus:     analytics.StatusNormal,
		},
		Weekly: []analytics.WeeklyStat{
			{YearWeek: "2026-W04", StartQty: 500, RejectedQty: 20, FailureRatePct: 4},
			{YearWeek: "2026-W05", StartQty: 700, RejectedQty: 40, FailureRatePct: 5.71},
		},
		Process: []analytics.ProcessStat{
			{ProcessStep: "Final Inspection", StartQty: 1200, RejectedQty: 60, YieldPct: 95},
		},
		Assignees: []analytics.AssigneeStat{
			{Assignee: "Dana", RejectedQty: 40},
			{Assignee: "Sam", RejectedQty: 20},
		},
		FailureModes: []analytics.ModeCount{
			{FailureMode: "Cracked", Count: 3},
			{FailureMode: "Scratched", Count: 2},
		},
		TopFailureModes: 20,
		TopAssignees:    10,
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteReport returned unexpected error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{
		"# QA Gate Analysis Report",
		"Generated on: 2026-02-01 09:30",
		"**Overall yield:** 95.00% (normal)",
		"## Weekly Volume and Failure Rate",
		"## Yield by Process Step",
		"## Top 20 Failure Modes",
		"## Top 10 Assignees by Rejections",
		"| 2026-W04 |",
		"| Cracked",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestWriteReport_TopNLimits(t *testing.T) {
	data := sampleReport()
	data.TopFailureModes = 1
	data.TopAssignees = 1

	var buf bytes.Buffer
	if err := WriteReport(&buf, data); err != nil {
		t.Fatalf("WriteReport returned unexpected error: %v", err)
	}

	out := buf.String()

	if strings.Contains(out, "Scratched") {
		t.Error("report should truncate failure modes past the limit")
	}

	if strings.Contains(out, "| Sam") {
		t.Error("report should truncate assignees past the limit")
	}
}

func TestWriteReport_SkipsEmptySections(t *testing.T) {
	data := ReportData{GeneratedAt: time.Now()}

	var buf bytes.Buffer
	if err := WriteReport(&buf, data); err != nil {
		t.Fatalf("WriteReport returned unexpected error: %v", err)
	}

	out := buf.String()

	for _, absent := range []string{"Weekly Volume", "Process Step", "Failure Modes", "Assignees"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty report should omit %q section", absent)
		}
	}
}

func TestWriteTable_AlignedColumns(t *testing.T) {
	var sb strings.Builder

	writeTable(&sb, []string{"Name", "Qty"}, [][]string{
		{"short", "1"},
		{"a much longer name", "23"},
	})

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), sb.String())
	}

	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			t.Errorf("line %d width = %d, want %d:\n%s", i, len(line), width, sb.String())
		}
	}
}
