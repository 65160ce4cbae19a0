package monitor

import "github.com/HerbHall/coopsense/pkg/risk"

// Bus topics published by the monitor.
const (
	// TopicTickCompleted carries a *Snapshot after every accepted tick.
	TopicTickCompleted = "monitor.tick.completed"
	// TopicReadingRejected carries a *RejectedReading when validation
	// fails; alert state and history keep their last good values.
	TopicReadingRejected = "monitor.reading.rejected"
	// TopicAlertRaised and TopicAlertCleared carry an *Alert.
	TopicAlertRaised  = "monitor.alert.raised"
	TopicAlertCleared = "monitor.alert.cleared"
)

// RejectedReading is the payload for TopicReadingRejected.
type RejectedReading struct {
	Reading risk.Reading `json:"reading"`
	Reason  string       `json:"reason"`
}
