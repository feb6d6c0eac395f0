// Package analytics builds the aggregations consumed by reports and exports:
// weekly and monthly volume, yield by process step, rejections by assignee
// and the failure-mode Pareto.
package analytics

import (
	"sort"
	"strings"

	"qagate/internal/models"
)

// Yield status levels.
const (
	StatusNormal   = "normal"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// WeeklyStat is one week's volume and failure rate.
type WeeklyStat struct {
	YearWeek       string
	StartQty       float64
	RejectedQty    float64
	FailureRatePct float64
}

// MonthlyStat is one month's volume and yield.
type MonthlyStat struct {
	Month       string
	MonthLabel  string
	StartQty    float64
	RejectedQty float64
	YieldPct    float64
}

// ProcessStat is one process step's volume and yield.
type ProcessStat struct {
	ProcessStep string
	StartQty    float64
	RejectedQty float64
	YieldPct    float64
}

// AssigneeStat is one assignee's total rejections.
type AssigneeStat struct {
	Assignee    string
	RejectedQty float64
}

// ModeCount is one failure mode's occurrence count.
type ModeCount struct {
	FailureMode string
	Count       int
}

// Summary holds the dataset-level key figures.
type Summary struct {
	Records         int
	FailureEvents   int
	TotalStart      float64
	TotalRejected   float64
	OverallYieldPct float64
	YieldStatus     string
}

// Weekly groups rows by year-week and computes volume and failure rate per
// bucket. Rows without a parsed timestamp are excluded from time buckets.
func Weekly(rows []models.GateRecord) []WeeklyStat {
	buckets := map[string]*WeeklyStat{}

	for i := range rows {
		row := &rows[i]
		if row.YearWeek == "" {
			continue
		}

		b, ok := buckets[row.YearWeek]
		if !ok {
			b = &WeeklyStat{YearWeek: row.YearWeek}
			buckets[row.YearWeek] = b
		}

		b.StartQty += row.StartQty
		b.RejectedQty += row.RejectedQty
	}

	stats := make([]WeeklyStat, 0, len(buckets))

	for _, b := range buckets {
		if b.StartQty > 0 {
			b.FailureRatePct = b.RejectedQty / b.StartQty * 100
		}

		stats = append(stats, *b)
	}

	// The year-week label is zero-padded, so a lexical sort is chronological.
	sort.Slice(stats, func(i, j int) bool { return stats[i].YearWeek < stats[j].YearWeek })

	return stats
}

// Monthly groups rows by month key, oldest first.
func Monthly(rows []models.GateRecord) []MonthlyStat {
	buckets := map[string]*MonthlyStat{}

	for i := range rows {
		row := &rows[i]
		if row.Month == "" {
			continue
		}

		b, ok := buckets[row.Month]
		if !ok {
			b = &MonthlyStat{Month: row.Month, MonthLabel: row.MonthLabel}
			buckets[row.Month] = b
		}

		b.StartQty += row.StartQty
		b.RejectedQty += row.RejectedQty
	}

	stats := make([]MonthlyStat, 0, len(buckets))

	for _, b := range buckets {
		if b.StartQty > 0 {
			b.YieldPct = (b.StartQty - b.RejectedQty) / b.StartQty * 100
		}

		stats = append(stats, *b)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Month < stats[j].Month })

	return stats
}

// ByProcessStep groups rows by classified process step, sorted by step name.
func ByProcessStep(rows []models.GateRecord) []ProcessStat {
	buckets := map[string]*ProcessStat{}

	for i := range rows {
		row := &rows[i]

		b, ok := buckets[row.ProcessStep]
		if !ok {
			b = &ProcessStat{ProcessStep: row.ProcessStep}
			buckets[row.ProcessStep] = b
		}

		b.StartQty += row.StartQty
		b.RejectedQty += row.RejectedQty
	}

	stats := make([]ProcessStat, 0, len(buckets))

	for _, b := range buckets {
		if b.StartQty > 0 {
			b.YieldPct = (b.StartQty - b.RejectedQty) / b.StartQty * 100
		}

		stats = append(stats, *b)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].ProcessStep < stats[j].ProcessStep })

	return stats
}

// RejectionsByAssignee totals rejected quantity per assignee, largest first.
// Ties break by name so repeated runs render identically.
func RejectionsByAssignee(rows []models.GateRecord) []AssigneeStat {
	totals := map[string]float64{}

	for i := range rows {
		totals[rows[i].Assignee] += rows[i].RejectedQty
	}

	stats := make([]AssigneeStat, 0, len(totals))

	for assignee, rejected := range totals {
		stats = append(stats, AssigneeStat{Assignee: assignee, RejectedQty: rejected})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RejectedQty != stats[j].RejectedQty {
			return stats[i].RejectedQty > stats[j].RejectedQty
		}

		return stats[i].Assignee < stats[j].Assignee
	})

	return stats
}

// FailureModes counts failure records per trimmed mode label, skipping labels
// on the exclusion list (handovers, trials and the like are table entries but
// not real failures). Largest count first, ties by label.
func FailureModes(failures []models.FailureRecord, isExcluded func(string) bool) []ModeCount {
	counts := map[string]int{}

	for i := range failures {
		mode := strings.TrimSpace(failures[i].FailureMode)
		if isExcluded != nil && isExcluded(mode) {
			continue
		}

		counts[mode]++
	}

	stats := make([]ModeCount, 0, len(counts))

	for mode, count := range counts {
		stats = append(stats, ModeCount{FailureMode: mode, Count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}

		return stats[i].FailureMode < stats[j].FailureMode
	})

	return stats
}

// Summarize computes the dataset key figures and a yield status against the
// warning/critical thresholds.
func Summarize(rows []models.GateRecord, failures []models.FailureRecord, warn, crit float64) Summary {
	s := Summary{
		Records:       len(rows),
		FailureEvents: len(failures),
	}

	for i := range rows {
		s.TotalStart += rows[i].StartQty
		s.TotalRejected += rows[i].RejectedQty
	}

	if s.TotalStart > 0 {
		s.OverallYieldPct = (s.TotalStart - s.TotalRejected) / s.TotalStart * 100
	}

	s.YieldStatus = YieldStatus(s.OverallYieldPct, warn, crit)

	return s
}

// YieldStatus classifies a yield percentage against alert thresholds.
func YieldStatus(pct, warn, crit float64) string {
	switch {
	case pct < crit:
		return StatusCritical
	case pct < warn:
		return StatusWarning
	default:
		return StatusNormal
	}
}
