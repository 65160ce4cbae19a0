// Package engine implements the CoopSense risk pipeline: reading
// validation, per-feature deviation scoring, weighted risk aggregation, and
// feature attribution ranking. All scoring math is pure and total over the
// valid input domain; the only failure modes are invalid configuration at
// construction and malformed readings at evaluation.
package engine

import "github.com/HerbHall/coopsense/pkg/risk"

// Engine evaluates readings against an immutable range table.
type Engine struct {
	table *RangeTable
}

// New creates an engine over a validated range table.
func New(table *RangeTable) *Engine {
	return &Engine{table: table}
}

// Table returns the engine's range table.
func (e *Engine) Table() *RangeTable {
	return e.table
}

// Evaluation is the full pipeline output for one reading.
type Evaluation struct {
	Reading      risk.Reading
	Deviations   []risk.Deviation
	Score        float64
	Level        risk.RiskLevel
	Attributions []risk.Attribution
}

// Evaluate runs validation, deviation scoring, aggregation, and attribution
// ranking for one reading.
func (e *Engine) Evaluate(r risk.Reading) (*Evaluation, error) {
	devs, err := ScoreDeviations(r, e.table)
	if err != nil {
		return nil, err
	}
	score, level := Aggregate(devs, e.table)
	return &Evaluation{
		Reading:      r,
		Deviations:   devs,
		Score:        score,
		Level:        level,
		Attributions: RankAttributions(r, e.table),
	}, nil
}

// Predict evaluates a reading and shapes the result as the external
// prediction contract.
func (e *Engine) Predict(r risk.Reading) (*risk.Prediction, error) {
	ev, err := e.Evaluate(r)
	if err != nil {
		return nil, err
	}
	return ev.Prediction(), nil
}

// Prediction converts an evaluation into the external response shape.
// A reading is anomalous when its score falls in the high band.
func (ev *Evaluation) Prediction() *risk.Prediction {
	return &risk.Prediction{
		Anomaly: risk.Anomaly{
			IsAnomaly:    ev.Score > risk.MediumScoreMax,
			AnomalyScore: ev.Score,
			Features:     ev.Reading,
		},
		Attributions: ev.Attributions,
		Severity:     ev.Level,
	}
}
