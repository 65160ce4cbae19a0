package notify

import (
	"context"

	"github.com/HerbHall/coopsense/internal/event"
	"github.com/HerbHall/coopsense/internal/monitor"
	"go.uber.org/zap"
)

// Dispatcher fans alert events out to every configured notifier. Delivery
// failures are logged and never block the monitor loop.
type Dispatcher struct {
	notifiers []Notifier
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher over the given notifiers.
func NewDispatcher(logger *zap.Logger, notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		logger:    logger,
	}
}

// Subscribe registers the dispatcher on the alert bus topics.
func (d *Dispatcher) Subscribe(bus *event.Bus) {
	bus.Subscribe(monitor.TopicAlertRaised, d.handleAlertEvent)
	bus.Subscribe(monitor.TopicAlertCleared, d.handleAlertEvent)
}

// handleAlertEvent delivers one alert event to all notifiers.
func (d *Dispatcher) handleAlertEvent(ctx context.Context, ev event.Event) {
	alert, ok := ev.Payload.(*monitor.Alert)
	if !ok {
		d.logger.Warn("unexpected payload type for alert event",
			zap.String("topic", ev.Topic),
		)
		return
	}

	eventType := "raised"
	if ev.Topic == monitor.TopicAlertCleared {
		eventType = "cleared"
	}

	for _, n := range d.notifiers {
		if err := n.Notify(ctx, alert, eventType); err != nil {
			d.logger.Warn("notification delivery failed",
				zap.String("notifier_type", n.Type()),
				zap.String("alert_id", alert.ID),
				zap.Error(err),
			)
			continue
		}

		d.logger.Debug("notification delivered",
			zap.String("notifier_type", n.Type()),
			zap.String("alert_id", alert.ID),
			zap.String("event_type", eventType),
		)
	}
}
