package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters and histograms for one alert run.
// They live on a private registry: a one-shot job has no scrape endpoint, so
// the whole registry is pushed to a Pushgateway after the run when one is
// configured.
type Metrics struct {
	registry *prometheus.Registry

	EntriesParsed        prometheus.Counter
	EntriesOverThreshold prometheus.Counter
	AlertsSent           prometheus.Counter
	AlertsPublished      prometheus.Counter
	FetchDuration        prometheus.Histogram
	RunTimestamp         prometheus.Gauge
	RunSucceeded         prometheus.Gauge
}

// NewMetrics creates and registers all run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EntriesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_alert",
			Name:      "forecast_entries_parsed_total",
			Help:      "Forecast table entries recovered from the SWPC text.",
		}),
		EntriesOverThreshold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_alert",
			Name:      "entries_over_threshold_total",
			Help:      "Entries meeting or exceeding the configured Kp threshold.",
		}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_alert",
			Name:      "alerts_sent_total",
			Help:      "Alert emails submitted to the SMTP relay.",
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_alert",
			Name:      "alerts_published_total",
			Help:      "Alert events published to the Kafka topic.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aurora_alert",
			Name:      "forecast_fetch_duration_seconds",
			Help:      "Duration of the forecast HTTP fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aurora_alert",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		RunSucceeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aurora_alert",
			Name:      "last_run_succeeded",
			Help:      "1 when the last run completed, 0 when it aborted.",
		}),
	}

	m.registry.MustRegister(
		m.EntriesParsed,
		m.EntriesOverThreshold,
		m.AlertsSent,
		m.AlertsPublished,
		m.FetchDuration,
		m.RunTimestamp,
		m.RunSucceeded,
	)

	return m
}

// Push submits the run's metrics to a Pushgateway, grouped by job name.
// Callers treat a failed push as log-worthy, never run-fatal.
func (m *Metrics) Push(gatewayURL, job string) error {
	return push.New(gatewayURL, job).Gatherer(m.registry).Add()
}
