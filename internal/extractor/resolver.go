package extractor

// resolveColumns maps a data line's cells to a sensor identifier and a
// failure mode using the active header labels. Each column runs an explicit
// ordered list of strategies so the heuristic stays auditable:
//
//	sensor id:    header synonym match, else Unresolved
//	failure mode: header synonym match, else positional fallback, else Unresolved
func (e *Extractor) resolveColumns(headers, cells []string) (sensorID, failureMode string) {
	sensorID = Unresolved
	failureMode = Unresolved

	if v, ok := matchHeader(e.sensorHeaders, headers, cells); ok {
		sensorID = v
	}

	if v, ok := matchHeader(e.failureHeaders, headers, cells); ok {
		failureMode = v
	} else if !containsAny(headers, e.failureHeaders) && len(cells) == 2 && sensorID != Unresolved {
		// Minimal two-column tables are assumed to be an id/failure pair.
		// This mis-attributes tables whose two columns are something else
		// entirely (e.g. Date | Notes); kept for compatibility with
		// historical exports.
		failureMode = cells[1]
	}

	return sensorID, failureMode
}

// matchHeader finds the first synonym present in the header set, in synonym
// priority order, and returns the data cell at that header's position. Once a
// synonym is found, later synonyms are not tried even if the cell index is
// out of range for this line.
func matchHeader(synonyms, headers, cells []string) (string, bool) {
	for _, syn := range synonyms {
		for i, h := range headers {
			if h != syn {
				continue
			}

			if i < len(cells) {
				return cells[i], true
			}

			return "", false
		}
	}

	return "", false
}

func containsAny(headers, synonyms []string) bool {
	for _, syn := range synonyms {
		for _, h := range headers {
			if h == syn {
				return true
			}
		}
	}

	return false
}
