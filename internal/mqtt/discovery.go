package mqtt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/HerbHall/coopsense/pkg/risk"
)

// nonAlphanumeric matches any character that is not alphanumeric or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// DiscoveryConfig holds a single HA MQTT discovery payload.
type DiscoveryConfig struct {
	Topic   string // Full MQTT topic (homeassistant/...)
	Payload []byte // JSON-encoded config (empty = remove)
	Retain  bool   // Discovery configs should always be retained
}

// HADevice is the "device" block in HA discovery payloads. All CoopSense
// entities hang off a single logical device so HA groups them together.
type HADevice struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	SWVersion    string   `json:"sw_version,omitempty"`
}

// BinarySensorConfig is the HA discovery payload for binary_sensor.
type BinarySensorConfig struct {
	Name        string   `json:"name"`
	ObjectID    string   `json:"object_id"`
	UniqueID    string   `json:"unique_id"`
	StateTopic  string   `json:"state_topic"`
	DeviceClass string   `json:"device_class,omitempty"`
	PayloadOn   string   `json:"payload_on"`
	PayloadOff  string   `json:"payload_off"`
	Device      HADevice `json:"device"`
	Icon        string   `json:"icon,omitempty"`
}

// SensorConfig is the HA discovery payload for sensor.
type SensorConfig struct {
	Name              string   `json:"name"`
	ObjectID          string   `json:"object_id"`
	UniqueID          string   `json:"unique_id"`
	StateTopic        string   `json:"state_topic"`
	UnitOfMeasurement string   `json:"unit_of_measurement,omitempty"`
	DeviceClass       string   `json:"device_class,omitempty"`
	Icon              string   `json:"icon,omitempty"`
	Device            HADevice `json:"device"`
}

// SafeObjectID sanitizes a string for use as an HA object_id.
// Replaces any non-alphanumeric character (except underscore) with underscore,
// lowercases, and trims leading/trailing underscores.
func SafeObjectID(s string) string {
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "unknown"
	}
	return s
}

// titleCase uppercases the first letter of an ASCII feature name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// buildHADevice creates the HA device block for the CoopSense monitor.
func buildHADevice(version string) HADevice {
	return HADevice{
		Identifiers:  []string{"coopsense_monitor"},
		Name:         "CoopSense",
		Model:        "environment monitor",
		Manufacturer: "CoopSense",
		SWVersion:    version,
	}
}

// featureDeviceClass maps a feature to the HA device class used for its
// sensor entity. Ammonia and pH have no standard class.
func featureDeviceClass(f risk.Feature) string {
	switch f {
	case risk.FeatureTemperature:
		return "temperature"
	case risk.FeatureHumidity:
		return "humidity"
	default:
		return ""
	}
}

// featureIcon maps a feature to a Material Design Icon string for use in
// Home Assistant.
func featureIcon(f risk.Feature) string {
	switch f {
	case risk.FeatureTemperature:
		return "mdi:thermometer"
	case risk.FeatureHumidity:
		return "mdi:water-percent"
	case risk.FeatureAmmonia:
		return "mdi:chemical-weapon"
	case risk.FeaturePH:
		return "mdi:ph"
	}
	return "mdi:gauge"
}

// BuildDiscoveryConfigs creates the full set of HA discovery payloads for
// the monitor: one sensor per feature, the composite anomaly score sensor,
// the risk level sensor, and the alert binary_sensor.
func BuildDiscoveryConfigs(topicPrefix, haPrefix, version string) []DiscoveryConfig {
	haDevice := buildHADevice(version)
	configs := make([]DiscoveryConfig, 0, len(risk.AllFeatures)+3)

	for _, f := range risk.AllFeatures {
		safeID := SafeObjectID(string(f))
		cfg := SensorConfig{
			Name:              "Coop " + titleCase(string(f)),
			ObjectID:          "coopsense_" + safeID,
			UniqueID:          "coopsense_" + safeID,
			StateTopic:        topicPrefix + "/sensor/" + string(f) + "/state",
			UnitOfMeasurement: f.Unit(),
			DeviceClass:       featureDeviceClass(f),
			Icon:              featureIcon(f),
			Device:            haDevice,
		}
		payload, err := json.Marshal(cfg)
		if err != nil {
			continue
		}
		configs = append(configs, DiscoveryConfig{
			Topic:   fmt.Sprintf("%s/sensor/coopsense/%s/config", haPrefix, safeID),
			Payload: payload,
			Retain:  true,
		})
	}

	scoreCfg := SensorConfig{
		Name:       "Coop Anomaly Score",
		ObjectID:   "coopsense_anomaly_score",
		UniqueID:   "coopsense_anomaly_score",
		StateTopic: topicPrefix + "/risk/score",
		Icon:       "mdi:chart-bell-curve",
		Device:     haDevice,
	}
	if payload, err := json.Marshal(scoreCfg); err == nil {
		configs = append(configs, DiscoveryConfig{
			Topic:   fmt.Sprintf("%s/sensor/coopsense/anomaly_score/config", haPrefix),
			Payload: payload,
			Retain:  true,
		})
	}

	levelCfg := SensorConfig{
		Name:       "Coop Risk Level",
		ObjectID:   "coopsense_risk_level",
		UniqueID:   "coopsense_risk_level",
		StateTopic: topicPrefix + "/risk/level",
		Icon:       "mdi:speedometer",
		Device:     haDevice,
	}
	if payload, err := json.Marshal(levelCfg); err == nil {
		configs = append(configs, DiscoveryConfig{
			Topic:   fmt.Sprintf("%s/sensor/coopsense/risk_level/config", haPrefix),
			Payload: payload,
			Retain:  true,
		})
	}

	alertCfg := BinarySensorConfig{
		Name:        "Coop Alert",
		ObjectID:    "coopsense_alert",
		UniqueID:    "coopsense_alert",
		StateTopic:  topicPrefix + "/alert/state",
		DeviceClass: "problem",
		PayloadOn:   "triggered",
		PayloadOff:  "cleared",
		Icon:        "mdi:alert-circle",
		Device:      haDevice,
	}
	if payload, err := json.Marshal(alertCfg); err == nil {
		configs = append(configs, DiscoveryConfig{
			Topic:   fmt.Sprintf("%s/binary_sensor/coopsense/alert/config", haPrefix),
			Payload: payload,
			Retain:  true,
		})
	}

	return configs
}
