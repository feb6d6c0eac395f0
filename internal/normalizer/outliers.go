package normalizer

import (
	"math"

	"qagate/internal/models"
)

// minOutlierSample is the smallest row set for which a z-score is meaningful.
// Below this, every row stays flagged non-outlier.
const minOutlierSample = 5

// flagOutliers marks rows whose yield deviates from the dataset mean by more
// than the configured number of standard deviations. The statistic is
// relative to the given row set, so flags are not stable row attributes.
func (n *Normalizer) flagOutliers(rows []models.GateRecord) {
	if !n.outliers.Enabled || len(rows) < minOutlierSample {
		return
	}

	mean := 0.0
	for i := range rows {
		mean += rows[i].YieldPct
	}
	mean /= float64(len(rows))

	variance := 0.0
	for i := range rows {
		d := rows[i].YieldPct - mean
		variance += d * d
	}
	// Sample variance, matching the historical statistic.
	variance /= float64(len(rows) - 1)

	std := math.Sqrt(variance)
	if std == 0 {
		// All yields identical: nothing is an outlier.
		return
	}

	for i := range rows {
		if math.Abs((rows[i].YieldPct-mean)/std) > n.outliers.ZScoreThreshold {
			rows[i].Outlier = true
		}
	}
}
