// Package mqtt publishes monitor state to an MQTT broker, with optional
// Home Assistant auto-discovery so the coop shows up as a device with one
// entity per sensor plus the composite risk entities.
package mqtt

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/HerbHall/coopsense/internal/event"
	"github.com/HerbHall/coopsense/internal/monitor"
	"github.com/HerbHall/coopsense/internal/version"
	"github.com/HerbHall/coopsense/pkg/risk"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Publisher bridges the event bus to an MQTT broker. It subscribes to
// monitor topics and republishes readings, risk state, and alert pulses as
// retained MQTT messages.
type Publisher struct {
	logger *zap.Logger
	cfg    Config
	mu     sync.RWMutex
	client pahomqtt.Client
}

// New creates an MQTT publisher. An empty broker URL yields a no-op
// publisher that drops everything.
func New(cfg Config, logger *zap.Logger) *Publisher {
	p := &Publisher{
		cfg:    cfg.withDefaults(),
		logger: logger,
	}

	if p.cfg.BrokerURL == "" {
		p.logger.Warn("MQTT broker URL not configured; events will be dropped",
			zap.String("component", "mqtt"),
		)
	}
	return p
}

// Start connects to the broker. Connection failures are logged, not fatal:
// the paho client reconnects in the background and publishes resume once
// the broker is reachable.
func (p *Publisher) Start(_ context.Context) error {
	if p.cfg.BrokerURL == "" {
		p.logger.Info("mqtt publisher started (no-op: no broker configured)")
		return nil
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(p.cfg.BrokerURL).
		SetClientID(p.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(p.cfg.Timeout)

	if p.cfg.Username != "" {
		opts.SetUsername(p.cfg.Username)
		opts.SetPassword(p.cfg.Password) //nolint:gosec // G101: config field
	}

	p.mu.Lock()
	p.client = pahomqtt.NewClient(opts)
	client := p.client
	p.mu.Unlock()

	token := client.Connect()
	switch {
	case !token.WaitTimeout(p.cfg.Timeout):
		p.logger.Warn("mqtt connection timed out; will reconnect in background")
	case token.Error() != nil:
		p.logger.Warn("mqtt connection failed; will reconnect in background",
			zap.Error(token.Error()),
		)
	default:
		p.logger.Info("mqtt connected to broker",
			zap.String("broker_url", p.cfg.BrokerURL),
		)
	}

	if p.cfg.HADiscovery {
		p.publishDiscovery()
	}
	return nil
}

// Stop disconnects from the broker.
func (p *Publisher) Stop(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
		p.logger.Info("mqtt disconnected")
	}
	return nil
}

// Connected reports whether the client currently holds a broker connection.
func (p *Publisher) Connected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client != nil && p.client.IsConnected()
}

// Subscribe registers the publisher's handlers on the event bus.
func (p *Publisher) Subscribe(bus *event.Bus) {
	bus.Subscribe(monitor.TopicTickCompleted, p.handleTick)
	bus.Subscribe(monitor.TopicAlertRaised, p.handleAlertRaised)
	bus.Subscribe(monitor.TopicAlertCleared, p.handleAlertCleared)
}

// handleTick publishes per-feature readings and the composite risk state.
func (p *Publisher) handleTick(_ context.Context, ev event.Event) {
	snap, ok := ev.Payload.(*monitor.Snapshot)
	if !ok {
		return
	}
	if !p.Connected() {
		return
	}

	for _, f := range risk.AllFeatures {
		value := strconv.FormatFloat(snap.Reading.Value(f), 'f', -1, 64)
		p.publishState(p.cfg.TopicPrefix+"/sensor/"+string(f)+"/state", value)
	}
	p.publishState(p.cfg.TopicPrefix+"/risk/score",
		strconv.FormatFloat(snap.AnomalyScore, 'f', -1, 64))
	p.publishState(p.cfg.TopicPrefix+"/risk/level", string(snap.Level))

	p.publishJSON(p.cfg.TopicPrefix+"/monitor/tick", snap, p.cfg.Retain)
}

// handleAlertRaised publishes the alert binary state and the alert body.
func (p *Publisher) handleAlertRaised(_ context.Context, ev event.Event) {
	alert, ok := ev.Payload.(*monitor.Alert)
	if !ok {
		return
	}
	if !p.Connected() {
		return
	}

	p.publishState(p.cfg.TopicPrefix+"/alert/state", "triggered")
	p.publishJSON(p.cfg.TopicPrefix+"/alert/last", alert, true)
}

// handleAlertCleared flips the alert binary state back and records the
// cleared alert body.
func (p *Publisher) handleAlertCleared(_ context.Context, ev event.Event) {
	alert, ok := ev.Payload.(*monitor.Alert)
	if !ok {
		return
	}
	if !p.Connected() {
		return
	}

	p.publishState(p.cfg.TopicPrefix+"/alert/state", "cleared")
	p.publishJSON(p.cfg.TopicPrefix+"/alert/last", alert, true)
}

// publishDiscovery publishes the retained HA discovery configs.
func (p *Publisher) publishDiscovery() {
	configs := BuildDiscoveryConfigs(p.cfg.TopicPrefix, p.cfg.HADiscoveryPrefix, version.Short())
	p.mu.RLock()
	client := p.client
	p.mu.RUnlock()
	if client == nil {
		return
	}

	for i := range configs {
		// Discovery configs are always retained so HA picks them up on restart.
		token := client.Publish(configs[i].Topic, p.cfg.QoS, true, configs[i].Payload)
		if !token.WaitTimeout(p.cfg.Timeout) {
			p.logger.Warn("ha discovery publish timed out",
				zap.String("topic", configs[i].Topic),
			)
			continue
		}
		if token.Error() != nil {
			p.logger.Warn("ha discovery publish failed",
				zap.String("topic", configs[i].Topic),
				zap.Error(token.Error()),
			)
			continue
		}
		p.logger.Debug("ha discovery published", zap.String("topic", configs[i].Topic))
	}
}

// publishState publishes a retained state value to an MQTT topic.
func (p *Publisher) publishState(topic, value string) {
	p.mu.RLock()
	client := p.client
	p.mu.RUnlock()
	if client == nil {
		return
	}

	token := client.Publish(topic, p.cfg.QoS, true, []byte(value))
	if !token.WaitTimeout(p.cfg.Timeout) {
		p.logger.Warn("state publish timed out", zap.String("topic", topic))
		return
	}
	if token.Error() != nil {
		p.logger.Warn("state publish failed",
			zap.String("topic", topic),
			zap.Error(token.Error()),
		)
		return
	}
	p.logger.Debug("state published", zap.String("topic", topic), zap.String("value", value))
}

// publishJSON publishes a JSON-encoded payload to an MQTT topic.
func (p *Publisher) publishJSON(topic string, v any, retain bool) {
	payload, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("failed to marshal MQTT payload",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return
	}

	p.mu.RLock()
	client := p.client
	p.mu.RUnlock()
	if client == nil {
		return
	}

	token := client.Publish(topic, p.cfg.QoS, retain, payload)
	if !token.WaitTimeout(p.cfg.Timeout) {
		p.logger.Warn("mqtt publish timed out", zap.String("topic", topic))
		return
	}
	if token.Error() != nil {
		p.logger.Warn("mqtt publish failed",
			zap.String("topic", topic),
			zap.Error(token.Error()),
		)
	}
}
