package normalizer

import (
	"strings"
	"time"
)

// createdLayouts are the timestamp formats seen across QC exports, tried in
// order. Numeric day/month layouts are day-first; that is how the exporting
// tool writes ambiguous dates.
var createdLayouts = []string{
	"02/Jan/06 3:04 PM",
	"2/Jan/06 3:04 PM",
	"02/Jan/2006 3:04 PM",
	"02/Jan/06 15:04",
	"02/Jan/2006 15:04",
	"02/Jan/06",
	"02/01/2006 15:04",
	"2/1/2006 15:04",
	"02/01/2006 3:04 PM",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006 15:04",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
}

// ParseCreated parses the loosely formatted created timestamp. It returns
// false when no known layout matches; callers leave every time-derived field
// empty in that case rather than dropping the row.
func ParseCreated(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range createdLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}
