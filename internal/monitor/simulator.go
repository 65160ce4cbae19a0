package monitor

import (
	"math/rand"
	"time"

	"github.com/HerbHall/coopsense/internal/engine"
	"github.com/HerbHall/coopsense/pkg/risk"
)

// Source produces successive sensor readings for the sampling loop.
type Source interface {
	Next() risk.Reading
}

// Compile-time interface guard.
var _ Source = (*Simulator)(nil)

// Perturbation spread per feature: each step moves the value by a uniform
// delta in [-spread, +spread] before clamping to the hard sensor bounds.
var spreads = map[risk.Feature]float64{
	risk.FeatureTemperature: 0.8,
	risk.FeatureHumidity:    2.5,
	risk.FeatureAmmonia:     1.2,
	risk.FeaturePH:          0.15,
}

// Simulator generates readings as a bounded random walk from a starting
// reading. It is not safe for concurrent use; the monitor loop owns it.
type Simulator struct {
	rng  *rand.Rand
	last risk.Reading
}

// NewSimulator creates a simulator seeded for reproducible walks. A zero
// seed picks a time-based seed.
func NewSimulator(seed int64, start risk.Reading) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		rng:  rand.New(rand.NewSource(seed)),
		last: start,
	}
}

// Next advances the walk one step and returns the new reading. Every value
// stays inside its feature's hard sensor bounds.
func (s *Simulator) Next() risk.Reading {
	next := risk.Reading{
		Temperature: s.step(risk.FeatureTemperature, s.last.Temperature),
		Humidity:    s.step(risk.FeatureHumidity, s.last.Humidity),
		Ammonia:     s.step(risk.FeatureAmmonia, s.last.Ammonia),
		PH:          s.step(risk.FeaturePH, s.last.PH),
	}
	s.last = next
	return next
}

func (s *Simulator) step(f risk.Feature, v float64) float64 {
	delta := (s.rng.Float64()*2 - 1) * spreads[f]
	return risk.PhysicalBound(f).Clamp(v + delta)
}

// BaselineReading returns a reading with every feature at its configured
// baseline, the usual starting point for the simulator.
func BaselineReading(table *engine.RangeTable) risk.Reading {
	return risk.Reading{
		Temperature: table.Range(risk.FeatureTemperature).Baseline,
		Humidity:    table.Range(risk.FeatureHumidity).Baseline,
		Ammonia:     table.Range(risk.FeatureAmmonia).Baseline,
		PH:          table.Range(risk.FeaturePH).Baseline,
	}
}
