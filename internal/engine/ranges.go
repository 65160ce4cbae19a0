package engine

import (
	"fmt"
	"math"

	"github.com/HerbHall/coopsense/pkg/risk"
)

// weightEpsilon is the tolerance when checking that feature weights sum to 1.
const weightEpsilon = 1e-9

// Range is the optimal band for one feature: the comfort bounds, the ideal
// baseline value, and the feature's share of the composite score.
type Range struct {
	Feature  risk.Feature `json:"feature" mapstructure:"feature"`
	Min      float64      `json:"min" mapstructure:"min"`
	Max      float64      `json:"max" mapstructure:"max"`
	Baseline float64      `json:"baseline" mapstructure:"baseline"`
	Weight   float64      `json:"weight" mapstructure:"weight"`
}

// RangeTable holds one validated Range per monitored feature. It is
// immutable after construction and safe for concurrent readers.
type RangeTable struct {
	ranges map[risk.Feature]Range
}

// DefaultRanges returns the built-in comfort bands for a poultry house.
func DefaultRanges() []Range {
	return []Range{
		{Feature: risk.FeatureTemperature, Min: 20, Max: 25, Baseline: 22.5, Weight: 0.30},
		{Feature: risk.FeatureHumidity, Min: 50, Max: 70, Baseline: 60, Weight: 0.20},
		{Feature: risk.FeatureAmmonia, Min: 5, Max: 10, Baseline: 7.5, Weight: 0.25},
		{Feature: risk.FeaturePH, Min: 6.5, Max: 7.5, Baseline: 7.0, Weight: 0.25},
	}
}

// NewRangeTable validates the given ranges and builds the lookup table.
// Exactly one range per monitored feature is required. Each band must
// satisfy 0 < min < max with the baseline inside [min, max], weights must
// be non-negative and sum to 1 within a small tolerance.
func NewRangeTable(ranges []Range) (*RangeTable, error) {
	byFeature := make(map[risk.Feature]Range, len(risk.AllFeatures))
	var weightSum float64

	for _, rg := range ranges {
		if rg.Feature.Index() >= len(risk.AllFeatures) {
			return nil, fmt.Errorf("%w: unknown feature %q", ErrConfig, rg.Feature)
		}
		if _, dup := byFeature[rg.Feature]; dup {
			return nil, fmt.Errorf("%w: duplicate range for %s", ErrConfig, rg.Feature)
		}
		for _, v := range []float64{rg.Min, rg.Max, rg.Baseline, rg.Weight} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s range contains a non-finite value", ErrConfig, rg.Feature)
			}
		}
		if rg.Min <= 0 {
			return nil, fmt.Errorf("%w: %s min must be positive, got %.4g", ErrConfig, rg.Feature, rg.Min)
		}
		if rg.Min >= rg.Max {
			return nil, fmt.Errorf("%w: %s min %.4g must be less than max %.4g", ErrConfig, rg.Feature, rg.Min, rg.Max)
		}
		if rg.Baseline < rg.Min || rg.Baseline > rg.Max {
			return nil, fmt.Errorf("%w: %s baseline %.4g outside [%.4g, %.4g]", ErrConfig, rg.Feature, rg.Baseline, rg.Min, rg.Max)
		}
		if rg.Weight < 0 {
			return nil, fmt.Errorf("%w: %s weight must be non-negative, got %.4g", ErrConfig, rg.Feature, rg.Weight)
		}
		byFeature[rg.Feature] = rg
		weightSum += rg.Weight
	}

	for _, f := range risk.AllFeatures {
		if _, ok := byFeature[f]; !ok {
			return nil, fmt.Errorf("%w: missing range for %s", ErrConfig, f)
		}
	}
	if math.Abs(weightSum-1) > weightEpsilon {
		return nil, fmt.Errorf("%w: weights sum to %.6f, want 1.0", ErrConfig, weightSum)
	}

	return &RangeTable{ranges: byFeature}, nil
}

// Range returns the configured band for a feature.
func (t *RangeTable) Range(f risk.Feature) Range {
	return t.ranges[f]
}

// Ranges returns all configured bands in canonical feature order.
func (t *RangeTable) Ranges() []Range {
	out := make([]Range, 0, len(risk.AllFeatures))
	for _, f := range risk.AllFeatures {
		out = append(out, t.ranges[f])
	}
	return out
}
