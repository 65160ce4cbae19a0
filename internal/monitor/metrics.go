package monitor

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the sampling pipeline.
var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coopsense_ticks_total",
			Help: "Total number of completed sampling ticks.",
		},
	)
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coopsense_tick_duration_seconds",
			Help:    "Sampling tick pipeline duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	readingsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coopsense_readings_rejected_total",
			Help: "Total number of readings rejected by validation.",
		},
	)
	alertsRaised = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coopsense_alerts_raised_total",
			Help: "Total number of alert pulses raised.",
		},
	)
	alertsCleared = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coopsense_alerts_cleared_total",
			Help: "Total number of alert pulses cleared after their dwell.",
		},
	)
	anomalyScoreGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "coopsense_anomaly_score",
			Help: "Composite anomaly score of the latest accepted reading.",
		},
	)
	riskLevelGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "coopsense_risk_level",
			Help: "Current risk band: 0=low, 1=medium, 2=high.",
		},
	)
	sensorReading = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coopsense_sensor_reading",
			Help: "Latest accepted sensor value per feature.",
		},
		[]string{"feature"},
	)
)

func init() {
	prometheus.MustRegister(ticksTotal)
	prometheus.MustRegister(tickDuration)
	prometheus.MustRegister(readingsRejected)
	prometheus.MustRegister(alertsRaised)
	prometheus.MustRegister(alertsCleared)
	prometheus.MustRegister(anomalyScoreGauge)
	prometheus.MustRegister(riskLevelGauge)
	prometheus.MustRegister(sensorReading)
}
