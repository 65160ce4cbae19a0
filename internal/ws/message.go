package ws

import "time"

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	MessageTickCompleted   MessageType = "tick.completed"
	MessageReadingRejected MessageType = "reading.rejected"
	MessageAlertRaised     MessageType = "alert.raised"
	MessageAlertCleared    MessageType = "alert.cleared"
)

// Message is the envelope for all WebSocket messages. Data carries the
// originating bus payload: a monitor snapshot for ticks, an alert for
// alert messages.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data"`
}
