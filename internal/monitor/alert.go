package monitor

import (
	"fmt"
	"time"

	"github.com/HerbHall/coopsense/pkg/risk"
	"github.com/google/uuid"
)

// AlertState is the coordinator's state machine state.
type AlertState string

const (
	AlertIdle   AlertState = "idle"
	AlertActive AlertState = "active"
)

// Alert is one discrete alert pulse raised by the coordinator.
type Alert struct {
	ID           string         `json:"id"`
	Level        risk.RiskLevel `json:"level"`
	AnomalyScore float64        `json:"anomaly_score"`
	Reading      risk.Reading   `json:"reading"`
	Message      string         `json:"message"`
	RaisedAt     time.Time      `json:"raised_at"`
	ClearedAt    *time.Time     `json:"cleared_at,omitempty"`
}

// Coordinator debounces high-risk ticks into discrete alert pulses. A high
// tick while idle raises an alert and arms a fixed dwell window; the alert
// clears when the dwell elapses regardless of the risk level at that
// moment. High ticks during the active window are absorbed, so a sustained
// escalation produces exactly one pulse per dwell window.
//
// The coordinator carries no clock or goroutine of its own: callers pass
// the current time, which keeps every state change on the sampling
// timeline and makes the dwell testable.
type Coordinator struct {
	dwell time.Duration

	state    AlertState
	current  *Alert
	expireAt time.Time
}

// NewCoordinator creates an idle coordinator with the given dwell window.
func NewCoordinator(dwell time.Duration) *Coordinator {
	return &Coordinator{dwell: dwell, state: AlertIdle}
}

// State returns the current state machine state.
func (c *Coordinator) State() AlertState {
	return c.state
}

// Active returns a copy of the currently active alert, or nil when idle.
func (c *Coordinator) Active() *Alert {
	if c.state != AlertActive || c.current == nil {
		return nil
	}
	out := *c.current
	return &out
}

// ExpiresAt returns the end of the active dwell window, if one is armed.
func (c *Coordinator) ExpiresAt() (time.Time, bool) {
	if c.state != AlertActive {
		return time.Time{}, false
	}
	return c.expireAt, true
}

// Observe feeds one tick. It first clears an alert whose dwell window has
// elapsed, then raises a new one when the level is high and the
// coordinator is idle. Both transitions can fire on the same tick when a
// sustained high condition spans dwell windows.
func (c *Coordinator) Observe(now time.Time, level risk.RiskLevel, score float64, reading risk.Reading) (cleared, raised *Alert) {
	cleared = c.Expire(now)

	if c.state == AlertIdle && level == risk.RiskHigh {
		alert := &Alert{
			ID:           uuid.New().String(),
			Level:        level,
			AnomalyScore: score,
			Reading:      reading,
			Message:      fmt.Sprintf("environment risk high: anomaly score %.3f", score),
			RaisedAt:     now,
		}
		c.current = alert
		c.state = AlertActive
		c.expireAt = now.Add(c.dwell)

		out := *alert
		raised = &out
	}
	return cleared, raised
}

// Expire clears the active alert once its dwell window has elapsed.
// Returns the cleared alert, or nil when nothing was due.
func (c *Coordinator) Expire(now time.Time) *Alert {
	if c.state != AlertActive || now.Before(c.expireAt) {
		return nil
	}

	done := *c.current
	clearedAt := now
	done.ClearedAt = &clearedAt

	c.current = nil
	c.state = AlertIdle
	c.expireAt = time.Time{}
	return &done
}
