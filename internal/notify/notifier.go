// Package notify delivers alert pulses to external channels. The monitor
// publishes raised and cleared alerts on the event bus; the dispatcher fans
// them out to every configured notifier.
package notify

import (
	"context"
	"time"

	"github.com/HerbHall/coopsense/internal/monitor"
)

// Notifier delivers alert notifications through a specific channel type.
type Notifier interface {
	// Notify sends an alert notification. eventType is "raised" or "cleared".
	Notify(ctx context.Context, alert *monitor.Alert, eventType string) error
	// Type returns the notifier type identifier (e.g., "webhook").
	Type() string
}

// WebhookConfig holds configuration for webhook notification delivery.
type WebhookConfig struct {
	URL     string            `json:"url" mapstructure:"url"`
	Secret  string            `json:"secret,omitempty" mapstructure:"secret"` //nolint:gosec // G101: config field name, not a credential
	Headers map[string]string `json:"headers,omitempty" mapstructure:"headers"`
	Timeout time.Duration     `json:"timeout,omitempty" mapstructure:"timeout"`
}
