// Package models defines data structures shared by the ingestion and analysis pipeline.
package models

import "time"

// RawRecord is one QC gate export row, exactly as uploaded and as persisted.
// Quantities stay strings until normalization; upstream exports are messy and
// the cleaner decides what a bad value means.
type RawRecord struct {
	IssueKey         string `json:"issueKey"`
	Summary          string `json:"summary"`
	Assignee         string `json:"assignee"`
	Created          string `json:"created"`
	StartQuantity    string `json:"startQuantity"`
	RejectedQuantity string `json:"rejectedQuantity"`
	Conclusion       string `json:"conclusion"`
	RejectedSensors  string `json:"rejectedSensors"`
}

// GateRecord is a cleaned and enriched gate row. All derived fields are
// computed once by the normalizer; a zero CreatedAt means the raw timestamp
// did not parse and every time-derived field is left empty.
type GateRecord struct {
	RawRecord

	CreatedAt   time.Time `json:"createdAt"`
	Week        int       `json:"week"`
	WeekYear    int       `json:"weekYear"`
	YearWeek    string    `json:"yearWeek"`
	Month       string    `json:"month"`
	MonthLabel  string    `json:"monthLabel"`
	StartQty    float64   `json:"startQty"`
	RejectedQty float64   `json:"rejectedQty"`
	PassedQty   float64   `json:"passedQty"`
	YieldPct    float64   `json:"yieldPct"`
	ProcessStep string    `json:"processStep"`
	InVitro     bool      `json:"inVitro"`
	Outlier     bool      `json:"outlier"`
}

// HasTimestamp reports whether the raw created field parsed to a usable time.
func (g *GateRecord) HasTimestamp() bool {
	return !g.CreatedAt.IsZero()
}
