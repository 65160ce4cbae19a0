// Package testutil provides shared fixtures for tests.
package testutil

import (
	"time"

	"github.com/HerbHall/coopsense/pkg/risk"
)

// NewReading returns a Reading at the default baselines, suitable for test
// fixtures. Override individual features with options as needed.
func NewReading(opts ...func(*risk.Reading)) risk.Reading {
	r := risk.Reading{
		Temperature: 22.5,
		Humidity:    60,
		Ammonia:     7.5,
		PH:          7.0,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithTemperature sets the temperature in degrees Celsius.
func WithTemperature(v float64) func(*risk.Reading) {
	return func(r *risk.Reading) { r.Temperature = v }
}

// WithHumidity sets the relative humidity percentage.
func WithHumidity(v float64) func(*risk.Reading) {
	return func(r *risk.Reading) { r.Humidity = v }
}

// WithAmmonia sets the ammonia concentration in ppm.
func WithAmmonia(v float64) func(*risk.Reading) {
	return func(r *risk.Reading) { r.Ammonia = v }
}

// WithPH sets the litter pH.
func WithPH(v float64) func(*risk.Reading) {
	return func(r *risk.Reading) { r.PH = v }
}

// NewSample returns a history Sample wrapping a baseline reading.
func NewSample(ts time.Time, opts ...func(*risk.Sample)) risk.Sample {
	s := risk.Sample{
		Timestamp: ts,
		Reading:   NewReading(),
		Level:     risk.RiskLow,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithScore sets the sample's anomaly score and matching level.
func WithScore(score float64) func(*risk.Sample) {
	return func(s *risk.Sample) {
		s.AnomalyScore = score
		s.Level = risk.LevelFromScore(score)
	}
}
