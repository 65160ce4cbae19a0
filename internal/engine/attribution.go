package engine

import (
	"math"
	"sort"

	"github.com/HerbHall/coopsense/pkg/risk"
)

// RankAttributions scores each feature by its distance from baseline,
// normalized by half the optimal range width and capped at 1, then sorts
// descending by importance with ties resolved in canonical feature order.
// Contribution is positive only when the value sits strictly outside the
// optimal range.
//
// Importance is deliberately not derived from the deviation magnitudes: it
// answers "which factor looks most unusual", measured from the baseline,
// while the anomaly score measures distance outside the band. A feature can
// rank first here while contributing nothing to the score.
func RankAttributions(r risk.Reading, table *RangeTable) []risk.Attribution {
	attrs := make([]risk.Attribution, 0, len(risk.AllFeatures))
	for _, f := range risk.AllFeatures {
		rg := table.Range(f)
		v := r.Value(f)

		halfWidth := (rg.Max - rg.Min) / 2
		importance := math.Abs(v-rg.Baseline) / halfWidth
		if importance > 1 {
			importance = 1
		}

		contribution := risk.ContributionNegative
		if v < rg.Min || v > rg.Max {
			contribution = risk.ContributionPositive
		}

		attrs = append(attrs, risk.Attribution{
			Feature:      f,
			Value:        v,
			Importance:   importance,
			Contribution: contribution,
		})
	}

	sort.SliceStable(attrs, func(i, j int) bool {
		if attrs[i].Importance != attrs[j].Importance {
			return attrs[i].Importance > attrs[j].Importance
		}
		return attrs[i].Feature.Index() < attrs[j].Feature.Index()
	})
	return attrs
}
