package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fahrplan"

// Metrics holds the collectors describing schedule loads.
type Metrics struct {
	loads    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_loads_total",
			Help:      "Schedule loads by feed and outcome",
		}, []string{"feed", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_load_duration_seconds",
			Help:      "Time spent fetching and parsing a schedule",
			Buckets:   prometheus.DefBuckets,
		}, []string{"feed"}),
		events: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "schedule_events",
			Help:      "Number of events in the last successfully loaded schedule",
		}, []string{"feed"}),
	}
	reg.MustRegister(m.loads, m.duration, m.events)
	return m
}

// Observe records one load of feed. outcome is "ok" on success, or the
// name of the failing stage.
func (m *Metrics) Observe(feed, outcome string, took time.Duration, count int) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(feed, outcome).Inc()
	m.duration.WithLabelValues(feed).Observe(took.Seconds())
	if outcome == "ok" {
		m.events.WithLabelValues(feed).Set(float64(count))
	}
}
