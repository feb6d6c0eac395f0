// Package normalizer cleans and enriches raw QC gate rows: timestamp parsing,
// calendar key derivation, quantity coercion under a validation policy,
// process step classification and dataset-relative outlier flagging.
package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"qagate/internal/models"
)

// DefaultStep is used when no configured prefix matches the summary text.
const DefaultStep = "Others"

// Policy controls how quantity columns are cleaned. The zero value is the
// strict policy: negatives clamped to zero, rejections capped at start.
type Policy struct {
	AllowNegativeQuantities       bool
	AllowRejectedGreaterThanStart bool
}

// OutlierOptions controls yield outlier flagging.
type OutlierOptions struct {
	Enabled         bool
	ZScoreThreshold float64
}

// StepMapping maps a lot-code prefix to a canonical process step name.
type StepMapping struct {
	Prefix string
	Step   string
}

// Options configures a Normalizer.
type Options struct {
	Steps          []StepMapping
	DefaultStep    string
	InVitroMarkers []string
	Policy         Policy
	Outliers       OutlierOptions
}

// Normalizer turns raw export rows into cleaned, enriched gate records.
type Normalizer struct {
	steps          []StepMapping
	defaultStep    string
	inVitroMarkers []string
	policy         Policy
	outliers       OutlierOptions
}

// New creates a normalizer. An empty default step falls back to DefaultStep
// and a zero z-score threshold falls back to 3.0.
func New(opts Options) *Normalizer {
	if opts.DefaultStep == "" {
		opts.DefaultStep = DefaultStep
	}

	if opts.Outliers.ZScoreThreshold == 0 {
		opts.Outliers.ZScoreThreshold = 3.0
	}

	markers := opts.InVitroMarkers
	if markers == nil {
		markers = []string{"In Vitro", "In-vitro"}
	}

	lowered := make([]string, len(markers))
	for i, m := range markers {
		lowered[i] = strings.ToLower(m)
	}

	return &Normalizer{
		steps:          opts.Steps,
		defaultStep:    opts.DefaultStep,
		inVitroMarkers: lowered,
		policy:         opts.Policy,
		outliers:       opts.Outliers,
	}
}

// Normalize cleans a full row set. It is pure with respect to its input and
// deterministic given the same policy: bad rows degrade to defaults, never
// abort the batch. Outlier flags are relative to this row set only.
func (n *Normalizer) Normalize(raws []models.RawRecord) []models.GateRecord {
	rows := make([]models.GateRecord, 0, len(raws))

	for _, raw := range raws {
		rows = append(rows, n.normalizeRow(raw))
	}

	n.flagOutliers(rows)

	return rows
}

func (n *Normalizer) normalizeRow(raw models.RawRecord) models.GateRecord {
	rec := models.GateRecord{RawRecord: raw}

	if ts, ok := ParseCreated(raw.Created); ok {
		rec.CreatedAt = ts

		year, week := ts.ISOWeek()
		rec.WeekYear = year
		rec.Week = week
		rec.YearWeek = fmt.Sprintf("%d-W%02d", year, week)
		rec.Month = ts.Format("2006-01")
		rec.MonthLabel = ts.Format("January 2006")
	}

	start := parseQuantity(raw.StartQuantity)
	rejected := parseQuantity(raw.RejectedQuantity)

	// Policy order matters: clamp negatives first, then cap per row.
	if !n.policy.AllowNegativeQuantities {
		if start < 0 {
			start = 0
		}

		if rejected < 0 {
			rejected = 0
		}
	}

	if !n.policy.AllowRejectedGreaterThanStart && rejected > start {
		rejected = start
	}

	rec.StartQty = start
	rec.RejectedQty = rejected
	rec.PassedQty = start - rejected

	// Yield of an empty gate is defined as zero, not an error.
	if start != 0 {
		rec.YieldPct = rec.PassedQty / start * 100
	}

	rec.ProcessStep = n.classify(raw.Summary)
	rec.InVitro = n.isInVitro(raw.Summary)

	return rec
}

// classify matches the summary text against the prefix table,
// case-insensitively, in table order. Unmatched text maps to the default step.
func (n *Normalizer) classify(summary string) string {
	upper := strings.ToUpper(strings.TrimSpace(summary))

	for _, m := range n.steps {
		if strings.HasPrefix(upper, strings.ToUpper(m.Prefix)) {
			return m.Step
		}
	}

	return n.defaultStep
}

func (n *Normalizer) isInVitro(summary string) bool {
	lower := strings.ToLower(summary)

	for _, marker := range n.inVitroMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

// parseQuantity coerces a quantity cell to a number. Malformed input means
// "no data" and becomes zero.
func parseQuantity(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}

	return v
}
