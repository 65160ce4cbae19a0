package engine

import (
	"fmt"
	"math"

	"github.com/HerbHall/coopsense/pkg/risk"
)

// ValidateReading rejects readings with non-finite values or values outside
// the sensor's hard physical bounds.
func ValidateReading(r risk.Reading) error {
	for _, f := range risk.AllFeatures {
		v := r.Value(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrValidation, f)
		}
		if b := risk.PhysicalBound(f); !b.Contains(v) {
			return fmt.Errorf("%w: %s %.4g outside physical bounds [%.4g, %.4g]",
				ErrValidation, f, v, b.Min, b.Max)
		}
	}
	return nil
}

// ScoreDeviations computes the relative out-of-range deviation for each
// feature, in canonical order. Values inside the optimal band score zero.
// Values outside score the distance past the violated bound relative to
// that bound, uncapped: ammonia 25 against a band of [5,10] scores 1.5.
func ScoreDeviations(r risk.Reading, table *RangeTable) ([]risk.Deviation, error) {
	if err := ValidateReading(r); err != nil {
		return nil, err
	}

	devs := make([]risk.Deviation, 0, len(risk.AllFeatures))
	for _, f := range risk.AllFeatures {
		rg := table.Range(f)
		v := r.Value(f)

		d := risk.Deviation{Feature: f, Value: v, Direction: risk.DirectionWithin}
		switch {
		case v < rg.Min:
			d.Magnitude = (rg.Min - v) / rg.Min
			d.Direction = risk.DirectionBelow
		case v > rg.Max:
			d.Magnitude = (v - rg.Max) / rg.Max
			d.Direction = risk.DirectionAbove
		}
		devs = append(devs, d)
	}
	return devs, nil
}
