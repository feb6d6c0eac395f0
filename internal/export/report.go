package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"qagate/internal/analytics"
)

// ReportData carries everything the markdown report renders.
type ReportData struct {
	GeneratedAt     time.Time
	Summary         analytics.Summary
	Weekly          []analytics.WeeklyStat
	Process         []analytics.ProcessStat
	Assignees       []analytics.AssigneeStat
	FailureModes    []analytics.ModeCount
	TopFailureModes int
	TopAssignees    int
}

// WriteReport renders the QA gate analysis report as markdown.
func WriteReport(w io.Writer, data ReportData) error {
	var sb strings.Builder

	sb.WriteString("# QA Gate Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated on: %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04")))

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Records analyzed:** %d\n", data.Summary.Records))
	sb.WriteString(fmt.Sprintf("- **Total units processed:** %.0f\n", data.Summary.TotalStart))
	sb.WriteString(fmt.Sprintf("- **Total rejected:** %.0f\n", data.Summary.TotalRejected))
	sb.WriteString(fmt.Sprintf("- **Overall yield:** %.2f%% (%s)\n", data.Summary.OverallYieldPct, data.Summary.YieldStatus))
	sb.WriteString(fmt.Sprintf("- **Failure events:** %d\n\n", data.Summary.FailureEvents))

	if len(data.Weekly) > 0 {
		sb.WriteString("## Weekly Volume and Failure Rate\n\n")

		rows := make([][]string, 0, len(data.Weekly))
		for _, s := range data.Weekly {
			rows = append(rows, []string{
				s.YearWeek,
				fmt.Sprintf("%.0f", s.StartQty),
				fmt.Sprintf("%.0f", s.RejectedQty),
				fmt.Sprintf("%.2f", s.FailureRatePct),
			})
		}

		writeTable(&sb, []string{"Week", "Start Qty", "Rejected", "Failure Rate %"}, rows)
	}

	if len(data.Process) > 0 {
		sb.WriteString("## Yield by Process Step\n\n")

		rows := make([][]string, 0, len(data.Process))
		for _, s := range data.Process {
			rows = append(rows, []string{
				s.ProcessStep,
				fmt.Sprintf("%.0f", s.StartQty),
				fmt.Sprintf("%.0f", s.RejectedQty),
				fmt.Sprintf("%.2f", s.YieldPct),
			})
		}

		writeTable(&sb, []string{"Process Step", "Start Qty", "Rejected", "Yield %"}, rows)
	}

	if len(data.FailureModes) > 0 {
		sb.WriteString(fmt.Sprintf("## Top %d Failure Modes\n\n", data.TopFailureModes))

		rows := make([][]string, 0, data.TopFailureModes)
		for i, m := range data.FailureModes {
			if i >= data.TopFailureModes {
				break
			}

			rows = append(rows, []string{m.FailureMode, fmt.Sprintf("%d", m.Count)})
		}

		writeTable(&sb, []string{"Failure Mode", "Count"}, rows)
	}

	if len(data.Assignees) > 0 {
		sb.WriteString(fmt.Sprintf("## Top %d Assignees by Rejections\n\n", data.TopAssignees))

		rows := make([][]string, 0, data.TopAssignees)
		for i, a := range data.Assignees {
			if i >= data.TopAssignees {
				break
			}

			rows = append(rows, []string{a.Assignee, fmt.Sprintf("%.0f", a.RejectedQty)})
		}

		writeTable(&sb, []string{"Assignee", "Rejected Qty"}, rows)
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// writeTable renders a markdown table with columns padded to equal display
// width, so the raw file stays readable in a terminal.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	widths := make([]int, len(headers))

	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Separator cells need at least three dashes.
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")

		for i, width := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}

			padding := width - runewidth.StringWidth(content)

			sb.WriteString(" ")
			sb.WriteString(content)

			if padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(headers)

	sb.WriteString("|")

	for _, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	sb.WriteString("\n")
}
