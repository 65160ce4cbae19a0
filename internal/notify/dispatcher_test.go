package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/HerbHall/coopsense/internal/event"
	"github.com/HerbHall/coopsense/internal/monitor"
	"go.uber.org/zap"
)

// fakeNotifier records deliveries and optionally fails.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []string // "<alertID>/<eventType>"
	fail  bool
}

func (f *fakeNotifier) Notify(_ context.Context, alert *monitor.Alert, eventType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, alert.ID+"/"+eventType)
	if f.fail {
		return errors.New("delivery failed")
	}
	return nil
}

func (f *fakeNotifier) Type() string { return "fake" }

func (f *fakeNotifier) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestDispatcherDeliversRaisedAndCleared(t *testing.T) {
	fake := &fakeNotifier{}
	d := NewDispatcher(zap.NewNop(), fake)

	bus := event.NewBus(zap.NewNop())
	d.Subscribe(bus)

	bus.Publish(context.Background(), event.Event{
		Topic:     monitor.TopicAlertRaised,
		Timestamp: time.Now(),
		Payload:   testAlert(),
	})
	bus.Publish(context.Background(), event.Event{
		Topic:     monitor.TopicAlertCleared,
		Timestamp: time.Now(),
		Payload:   testAlert(),
	})

	got := fake.recorded()
	want := []string{"alert-1/raised", "alert-1/cleared"}
	if len(got) != len(want) {
		t.Fatalf("deliveries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// One failing notifier must not block the others.
func TestDispatcherContinuesAfterFailure(t *testing.T) {
	failing := &fakeNotifier{fail: true}
	healthy := &fakeNotifier{}
	d := NewDispatcher(zap.NewNop(), failing, healthy)

	bus := event.NewBus(zap.NewNop())
	d.Subscribe(bus)

	bus.Publish(context.Background(), event.Event{
		Topic:   monitor.TopicAlertRaised,
		Payload: testAlert(),
	})

	if got := healthy.recorded(); len(got) != 1 {
		t.Errorf("healthy notifier deliveries = %v, want 1", got)
	}
}

func TestDispatcherIgnoresForeignPayload(t *testing.T) {
	fake := &fakeNotifier{}
	d := NewDispatcher(zap.NewNop(), fake)

	bus := event.NewBus(zap.NewNop())
	d.Subscribe(bus)

	bus.Publish(context.Background(), event.Event{
		Topic:   monitor.TopicAlertRaised,
		Payload: "not an alert",
	})

	if got := fake.recorded(); len(got) != 0 {
		t.Errorf("deliveries = %v, want none for foreign payload", got)
	}
}
