package engine

import "github.com/HerbHall/coopsense/pkg/risk"

// Aggregate folds per-feature deviations into a composite anomaly score in
// [0,1] and its risk band. Each feature contributes weight times magnitude;
// the clamp caps runaway single-feature deviations.
func Aggregate(deviations []risk.Deviation, table *RangeTable) (float64, risk.RiskLevel) {
	var score float64
	for _, d := range deviations {
		score += table.Range(d.Feature).Weight * d.Magnitude
	}
	score = clamp01(score)
	return score, risk.LevelFromScore(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
