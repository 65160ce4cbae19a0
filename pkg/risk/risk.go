// Package risk defines the public data model for the CoopSense environment
// risk engine: sensor readings, deviation scores, risk bands, and the
// prediction contract served to consumers.
package risk

import "time"

// Feature identifies one monitored environment metric.
type Feature string

const (
	FeatureTemperature Feature = "temperature"
	FeatureHumidity    Feature = "humidity"
	FeatureAmmonia     Feature = "ammonia"
	FeaturePH          Feature = "ph"
)

// AllFeatures lists the monitored features in canonical declaration order.
// Attribution tie-breaking and discovery payloads follow this order.
var AllFeatures = []Feature{FeatureTemperature, FeatureHumidity, FeatureAmmonia, FeaturePH}

// Index returns the feature's position in canonical order, or
// len(AllFeatures) for unknown features.
func (f Feature) Index() int {
	for i, known := range AllFeatures {
		if f == known {
			return i
		}
	}
	return len(AllFeatures)
}

// Unit returns the measurement unit used in display and MQTT discovery
// payloads.
func (f Feature) Unit() string {
	switch f {
	case FeatureTemperature:
		return "°C"
	case FeatureHumidity:
		return "%"
	case FeatureAmmonia:
		return "ppm"
	case FeaturePH:
		return "pH"
	default:
		return ""
	}
}

// Bound is a hard physical limit for one sensor. Values outside the bound
// are treated as sensor faults, not as extreme-but-real environment states.
type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the bound (inclusive).
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Clamp returns v limited to the bound.
func (b Bound) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// physicalBounds is the fixed sensor envelope. It is intentionally wider
// than any configurable optimal range.
var physicalBounds = map[Feature]Bound{
	FeatureTemperature: {Min: 10, Max: 40},
	FeatureHumidity:    {Min: 20, Max: 95},
	FeatureAmmonia:     {Min: 0, Max: 25},
	FeaturePH:          {Min: 4, Max: 10},
}

// PhysicalBound returns the hard sensor limit for a feature.
func PhysicalBound(f Feature) Bound {
	return physicalBounds[f]
}

// Reading is a single snapshot of the four monitored metrics.
type Reading struct {
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_percent"`
	Ammonia     float64 `json:"ammonia_ppm"`
	PH          float64 `json:"ph"`
}

// Value returns the reading's value for the given feature.
func (r Reading) Value(f Feature) float64 {
	switch f {
	case FeatureTemperature:
		return r.Temperature
	case FeatureHumidity:
		return r.Humidity
	case FeatureAmmonia:
		return r.Ammonia
	case FeaturePH:
		return r.PH
	default:
		return 0
	}
}

// Direction indicates which side of the optimal range a value fell on.
type Direction string

const (
	DirectionWithin Direction = "within"
	DirectionBelow  Direction = "below"
	DirectionAbove  Direction = "above"
)

// Deviation describes how far one feature strayed outside its optimal range.
// Magnitude is zero when the value is within range and is not capped above:
// a value twice the range maximum yields magnitude 1.0.
type Deviation struct {
	Feature   Feature   `json:"feature"`
	Value     float64   `json:"value"`
	Magnitude float64   `json:"magnitude"`
	Direction Direction `json:"direction"`
}

// RiskLevel bands a composite anomaly score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Band boundaries for composite anomaly scores. A score exactly on a
// boundary resolves to the lower band.
const (
	LowScoreMax    = 0.4
	MediumScoreMax = 0.7
)

// LevelFromScore maps a composite anomaly score to its risk band.
func LevelFromScore(score float64) RiskLevel {
	switch {
	case score <= LowScoreMax:
		return RiskLow
	case score <= MediumScoreMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Rank returns the severity order of a level: low=0, medium=1, high=2.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return 0
	}
}

// RecommendationsFor returns operator guidance for a risk band.
func RecommendationsFor(l RiskLevel) []string {
	switch l {
	case RiskHigh:
		return []string{
			"Increase ventilation",
			"Check ammonia control systems",
			"Monitor bird behavior closely",
		}
	case RiskMedium:
		return []string{
			"Consider increasing ventilation",
			"Check environmental controls",
		}
	default:
		return []string{
			"Continue regular monitoring",
			"Maintain current settings",
		}
	}
}

// Contribution is the direction a feature pushed the composite score.
// Positive means the value lies strictly outside its optimal range.
type Contribution string

const (
	ContributionPositive Contribution = "positive"
	ContributionNegative Contribution = "negative"
)

// Attribution ranks one feature's influence on the current prediction.
// Importance is distance-from-baseline normalized by half the optimal range
// width and capped at 1. It is a different signal from Deviation.Magnitude,
// which measures distance outside the range: a feature can carry nonzero
// importance while sitting inside its range.
type Attribution struct {
	Feature      Feature      `json:"feature"`
	Value        float64      `json:"value"`
	Importance   float64      `json:"importance"`
	Contribution Contribution `json:"contribution"`
}

// Anomaly is the anomaly verdict inside a Prediction.
type Anomaly struct {
	IsAnomaly    bool    `json:"is_anomaly"`
	AnomalyScore float64 `json:"anomaly_score"`
	Features     Reading `json:"features"`
}

// Prediction is the engine's response for one scored Reading.
type Prediction struct {
	Anomaly      Anomaly       `json:"anomaly"`
	Attributions []Attribution `json:"attributions"`
	Severity     RiskLevel     `json:"severity"`
}

// Sample is one history entry: a scored reading on the sampling timeline.
type Sample struct {
	Timestamp    time.Time `json:"timestamp"`
	Reading      Reading   `json:"reading"`
	AnomalyScore float64   `json:"anomaly_score"`
	Level        RiskLevel `json:"level"`
}
