package engine

import (
	"math"
	"testing"

	"github.com/HerbHall/coopsense/pkg/risk"
)

func TestAggregate_BaselineScoresZero(t *testing.T) {
	table := defaultTable(t)
	devs, err := ScoreDeviations(baselineReading(), table)
	if err != nil {
		t.Fatalf("ScoreDeviations() error = %v", err)
	}

	score, level := Aggregate(devs, table)
	if score != 0 {
		t.Errorf("Aggregate() score = %v, want 0", score)
	}
	if level != risk.RiskLow {
		t.Errorf("Aggregate() level = %v, want low", level)
	}
}

func TestAggregate_SingleFeatureScenario(t *testing.T) {
	// Temperature 30 against band [20,25] weight 0.3: magnitude 0.2,
	// score 0.3*0.2 = 0.06, low.
	table := defaultTable(t)
	r := baselineReading()
	r.Temperature = 30

	devs, err := ScoreDeviations(r, table)
	if err != nil {
		t.Fatalf("ScoreDeviations() error = %v", err)
	}

	score, level := Aggregate(devs, table)
	if math.Abs(score-0.06) > 1e-9 {
		t.Errorf("Aggregate() score = %v, want 0.06", score)
	}
	if level != risk.RiskLow {
		t.Errorf("Aggregate() level = %v, want low", level)
	}
}

func TestAggregate_AmmoniaContribution(t *testing.T) {
	// Ammonia 25 against band [5,10] weight 0.25: magnitude 1.5 contributes
	// 0.375 on its own.
	table := defaultTable(t)
	r := baselineReading()
	r.Ammonia = 25

	devs, err := ScoreDeviations(r, table)
	if err != nil {
		t.Fatalf("ScoreDeviations() error = %v", err)
	}

	score, level := Aggregate(devs, table)
	if math.Abs(score-0.375) > 1e-9 {
		t.Errorf("Aggregate() score = %v, want 0.375", score)
	}
	if level != risk.RiskLow {
		t.Errorf("Aggregate() level = %v, want low", level)
	}
}

func TestAggregate_ClampsToOne(t *testing.T) {
	table := defaultTable(t)
	devs := []risk.Deviation{
		{Feature: risk.FeatureTemperature, Magnitude: 10, Direction: risk.DirectionAbove},
		{Feature: risk.FeatureHumidity, Magnitude: 10, Direction: risk.DirectionAbove},
		{Feature: risk.FeatureAmmonia, Magnitude: 10, Direction: risk.DirectionAbove},
		{Feature: risk.FeaturePH, Magnitude: 10, Direction: risk.DirectionAbove},
	}

	score, level := Aggregate(devs, table)
	if score != 1 {
		t.Errorf("Aggregate() score = %v, want 1", score)
	}
	if level != risk.RiskHigh {
		t.Errorf("Aggregate() level = %v, want high", level)
	}
}

func TestAggregate_BandBoundaries(t *testing.T) {
	// Equal weights make exact boundary scores constructible: 0.25*1.6 = 0.4
	// and 0.25*2.8 = 0.7 are exact in float64. Boundary scores resolve to
	// the lower band.
	rs := DefaultRanges()
	for i := range rs {
		rs[i].Weight = 0.25
	}
	table, err := NewRangeTable(rs)
	if err != nil {
		t.Fatalf("NewRangeTable() error = %v", err)
	}

	tests := []struct {
		name      string
		magnitude float64
		wantScore float64
		wantLevel risk.RiskLevel
	}{
		{name: "exactly low boundary", magnitude: 1.6, wantScore: 0.4, wantLevel: risk.RiskLow},
		{name: "just above low boundary", magnitude: 1.61, wantScore: 0.4025, wantLevel: risk.RiskMedium},
		{name: "exactly medium boundary", magnitude: 2.8, wantScore: 0.7, wantLevel: risk.RiskMedium},
		{name: "just above medium boundary", magnitude: 2.81, wantScore: 0.7025, wantLevel: risk.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devs := []risk.Deviation{
				{Feature: risk.FeatureTemperature, Magnitude: tt.magnitude, Direction: risk.DirectionAbove},
				{Feature: risk.FeatureHumidity},
				{Feature: risk.FeatureAmmonia},
				{Feature: risk.FeaturePH},
			}
			score, level := Aggregate(devs, table)
			if math.Abs(score-tt.wantScore) > 1e-9 {
				t.Errorf("Aggregate() score = %v, want %v", score, tt.wantScore)
			}
			if level != tt.wantLevel {
				t.Errorf("Aggregate() level = %v, want %v", level, tt.wantLevel)
			}
		})
	}
}

func TestAggregate_MonotonicInDeviation(t *testing.T) {
	// Holding other features fixed, the score never decreases as one
	// feature's deviation grows.
	table := defaultTable(t)

	prev := -1.0
	for _, ammonia := range []float64{7.5, 10, 12, 15, 20, 25} {
		r := baselineReading()
		r.Ammonia = ammonia

		devs, err := ScoreDeviations(r, table)
		if err != nil {
			t.Fatalf("ScoreDeviations(ammonia=%v) error = %v", ammonia, err)
		}
		score, _ := Aggregate(devs, table)
		if score < prev {
			t.Errorf("score decreased: ammonia=%v score=%v prev=%v", ammonia, score, prev)
		}
		if score < 0 || score > 1 {
			t.Errorf("score out of range: ammonia=%v score=%v", ammonia, score)
		}
		prev = score
	}
}
