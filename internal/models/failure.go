package models

import "time"

// FailureRecord is one entry detected in a failure table embedded in a gate's
// free-text fields. It is always subordinate to exactly one GateRecord and is
// recomputed on every extraction pass, never persisted.
type FailureRecord struct {
	IssueKey    string    `json:"issueKey"`
	CreatedAt   time.Time `json:"createdAt"`
	Week        int       `json:"week"`
	YearWeek    string    `json:"yearWeek"`
	ProcessStep string    `json:"processStep"`
	Assignee    string    `json:"assignee"`
	SensorID    string    `json:"sensorId"`
	FailureMode string    `json:"failureMode"`
}
