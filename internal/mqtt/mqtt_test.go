package mqtt

import (
	"context"
	"testing"
	"time"

	"github.com/HerbHall/coopsense/internal/event"
	"github.com/HerbHall/coopsense/internal/monitor"
	"github.com/HerbHall/coopsense/internal/testutil"
	"github.com/HerbHall/coopsense/pkg/risk"
	"go.uber.org/zap"
)

func TestConfigWithDefaults(t *testing.T) {
	got := Config{}.withDefaults()

	if got.ClientID != "coopsense" {
		t.Errorf("ClientID = %q, want coopsense", got.ClientID)
	}
	if got.TopicPrefix != "coopsense" {
		t.Errorf("TopicPrefix = %q, want coopsense", got.TopicPrefix)
	}
	if got.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", got.Timeout)
	}
	if got.HADiscoveryPrefix != "homeassistant" {
		t.Errorf("HADiscoveryPrefix = %q, want homeassistant", got.HADiscoveryPrefix)
	}
}

func TestConfigWithDefaults_KeepsExplicit(t *testing.T) {
	in := Config{
		BrokerURL:         "tcp://broker:1883",
		ClientID:          "coop-a",
		TopicPrefix:       "barn/coop-a",
		Timeout:           2 * time.Second,
		HADiscoveryPrefix: "ha",
	}

	got := in.withDefaults()
	if got != in {
		t.Errorf("withDefaults() = %+v, want unchanged %+v", got, in)
	}
}

// A publisher without a broker must be safe to start, feed, and stop.
func TestPublisherNoBrokerIsNoOp(t *testing.T) {
	p := New(Config{}, zap.NewNop())

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p.Connected() {
		t.Error("Connected() = true without a broker")
	}

	bus := event.NewBus(zap.NewNop())
	p.Subscribe(bus)

	snap := &monitor.Snapshot{
		Timestamp:    time.Now(),
		Reading:      testutil.NewReading(),
		AnomalyScore: 0,
		Level:        risk.RiskLow,
	}
	bus.Publish(context.Background(), event.Event{
		Topic:     monitor.TopicTickCompleted,
		Timestamp: snap.Timestamp,
		Payload:   snap,
	})
	bus.Publish(context.Background(), event.Event{
		Topic:     monitor.TopicAlertRaised,
		Timestamp: time.Now(),
		Payload:   &monitor.Alert{ID: "a-1", Level: risk.RiskHigh},
	})

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

// Handlers must tolerate payloads of unexpected types.
func TestPublisherIgnoresForeignPayloads(t *testing.T) {
	p := New(Config{}, zap.NewNop())
	bus := event.NewBus(zap.NewNop())
	p.Subscribe(bus)

	bus.Publish(context.Background(), event.Event{
		Topic:   monitor.TopicTickCompleted,
		Payload: "not a snapshot",
	})
	bus.Publish(context.Background(), event.Event{
		Topic:   monitor.TopicAlertCleared,
		Payload: 42,
	})
}
