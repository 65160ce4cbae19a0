// Package monitor drives the CoopSense sampling loop. Every tick it pulls
// a reading from its source, scores it through the risk engine, updates
// the alert coordinator and the history window, and fans the result out on
// the event bus. Alert state and history are mutated only on the loop
// goroutine; accessors serve copies under a read lock.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/HerbHall/coopsense/internal/engine"
	"github.com/HerbHall/coopsense/internal/event"
	"github.com/HerbHall/coopsense/pkg/risk"
	"go.uber.org/zap"
)

// Snapshot is the composed result of the latest accepted tick.
type Snapshot struct {
	Timestamp       time.Time          `json:"timestamp"`
	Reading         risk.Reading       `json:"reading"`
	Deviations      []risk.Deviation   `json:"deviations"`
	AnomalyScore    float64            `json:"anomaly_score"`
	Level           risk.RiskLevel     `json:"level"`
	Attributions    []risk.Attribution `json:"attributions"`
	Recommendations []string           `json:"recommendations"`
}

// Monitor owns the sampling loop and the state it mutates.
type Monitor struct {
	cfg    Config
	engine *engine.Engine
	source Source
	bus    *event.Bus
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	latest  *Snapshot
	history *History
	coord   *Coordinator

	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	alertTimer *time.Timer
}

// New creates a monitor. A nil source defaults to a simulator starting at
// the configured baselines.
func New(cfg Config, eng *engine.Engine, source Source, bus *event.Bus, logger *zap.Logger) *Monitor {
	cfg = cfg.withDefaults()
	if source == nil {
		source = NewSimulator(cfg.Seed, BaselineReading(eng.Table()))
	}
	return &Monitor{
		cfg:     cfg,
		engine:  eng,
		source:  source,
		bus:     bus,
		logger:  logger,
		now:     time.Now,
		history: NewHistory(cfg.HistorySize),
		coord:   NewCoordinator(cfg.AlertDwell),
	}
}

// Start launches the sampling loop. The first tick runs immediately, then
// one per interval. The ticker buffers at most one pending fire, so a slow
// tick coalesces missed intervals instead of overlapping the pipeline.
func (m *Monitor) Start(ctx context.Context) {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() {
			if m.alertTimer != nil {
				m.alertTimer.Stop()
			}
		}()

		ticker := time.NewTicker(m.cfg.TickInterval)
		defer ticker.Stop()

		// Sample immediately so consumers have data before the first
		// interval elapses.
		m.tick()

		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				m.tick()
			case <-m.alertTimerChan():
				m.expire()
			}
		}
	}()

	m.logger.Info("monitor started",
		zap.Duration("tick_interval", m.cfg.TickInterval),
		zap.Duration("alert_dwell", m.cfg.AlertDwell),
		zap.Int("history_size", m.cfg.HistorySize),
	)
}

// Stop cancels the loop and waits for it to exit. An in-flight tick's
// result is discarded once cancellation is observed.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

// Running reports whether the sampling loop is active.
func (m *Monitor) Running() bool {
	return m.ctx != nil && m.ctx.Err() == nil
}

// alertTimerChan returns the dwell timer channel, or a nil channel that
// blocks forever when no alert is armed.
func (m *Monitor) alertTimerChan() <-chan time.Time {
	if m.alertTimer == nil {
		return nil
	}
	return m.alertTimer.C
}

// tick runs one sample-score-update cycle on the loop goroutine.
func (m *Monitor) tick() {
	start := m.now()

	reading := m.source.Next()
	ev, err := m.engine.Evaluate(reading)
	if err != nil {
		readingsRejected.Inc()
		m.logger.Warn("reading rejected, keeping last good state", zap.Error(err))
		m.bus.PublishAsync(m.ctx, event.Event{
			Topic:     TopicReadingRejected,
			Source:    "monitor",
			Timestamp: start,
			Payload:   &RejectedReading{Reading: reading, Reason: err.Error()},
		})
		return
	}

	// Discard the in-flight result when stopped mid-tick.
	if m.ctx.Err() != nil {
		return
	}

	snap := &Snapshot{
		Timestamp:       start,
		Reading:         reading,
		Deviations:      ev.Deviations,
		AnomalyScore:    ev.Score,
		Level:           ev.Level,
		Attributions:    ev.Attributions,
		Recommendations: risk.RecommendationsFor(ev.Level),
	}

	m.mu.Lock()
	m.latest = snap
	m.history.Append(risk.Sample{
		Timestamp:    start,
		Reading:      reading,
		AnomalyScore: ev.Score,
		Level:        ev.Level,
	})
	cleared, raised := m.coord.Observe(start, ev.Level, ev.Score, reading)
	m.mu.Unlock()

	ticksTotal.Inc()
	anomalyScoreGauge.Set(ev.Score)
	riskLevelGauge.Set(float64(ev.Level.Rank()))
	for _, f := range risk.AllFeatures {
		sensorReading.WithLabelValues(string(f)).Set(reading.Value(f))
	}
	tickDuration.Observe(m.now().Sub(start).Seconds())

	m.bus.PublishAsync(m.ctx, event.Event{
		Topic:     TopicTickCompleted,
		Source:    "monitor",
		Timestamp: start,
		Payload:   snap,
	})

	if cleared != nil {
		m.publishCleared(cleared)
	}
	if raised != nil {
		alertsRaised.Inc()
		// A boundary tick can clear and re-raise in one Observe call
		// before the old dwell timer fires; stop it so its stale fire
		// cannot expire the fresh alert's timer.
		if m.alertTimer != nil {
			m.alertTimer.Stop()
		}
		m.alertTimer = time.NewTimer(m.cfg.AlertDwell)
		m.logger.Warn("alert raised",
			zap.String("alert_id", raised.ID),
			zap.Float64("score", raised.AnomalyScore),
			zap.Duration("dwell", m.cfg.AlertDwell),
		)
		m.bus.PublishAsync(m.ctx, event.Event{
			Topic:     TopicAlertRaised,
			Source:    "monitor",
			Timestamp: raised.RaisedAt,
			Payload:   raised,
		})
	}

	m.logger.Debug("tick completed",
		zap.Float64("score", ev.Score),
		zap.String("level", string(ev.Level)),
	)
}

// expire handles a dwell timer fire on the loop goroutine.
func (m *Monitor) expire() {
	m.alertTimer = nil

	m.mu.Lock()
	cleared := m.coord.Expire(m.now())
	m.mu.Unlock()

	if cleared != nil {
		m.publishCleared(cleared)
	}
}

func (m *Monitor) publishCleared(a *Alert) {
	alertsCleared.Inc()
	m.logger.Info("alert cleared", zap.String("alert_id", a.ID))

	ts := a.RaisedAt
	if a.ClearedAt != nil {
		ts = *a.ClearedAt
	}
	m.bus.PublishAsync(m.ctx, event.Event{
		Topic:     TopicAlertCleared,
		Source:    "monitor",
		Timestamp: ts,
		Payload:   a,
	})
}

// Latest returns the newest snapshot, or nil before the first accepted
// tick. Snapshots are immutable once published.
func (m *Monitor) Latest() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// HistorySamples returns the scored samples in arrival order, oldest
// first.
func (m *Monitor) HistorySamples() []risk.Sample {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.Samples()
}

// AlertStatus returns the coordinator state and a copy of the active
// alert, if any.
func (m *Monitor) AlertStatus() (AlertState, *Alert) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.coord.State(), m.coord.Active()
}

// Predict scores a caller-supplied reading without touching loop state.
func (m *Monitor) Predict(r risk.Reading) (*risk.Prediction, error) {
	return m.engine.Predict(r)
}

// Ranges returns the active range table in canonical feature order.
func (m *Monitor) Ranges() []engine.Range {
	return m.engine.Table().Ranges()
}
