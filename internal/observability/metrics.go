package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for one analysis run.
// The run is a batch process, so the counters are primarily inspected in
// tests and in the end-of-run summary log.
type Metrics struct {
	RowsFetched prometheus.Counter
	RowsDropped prometheus.Counter
	RowsCleaned prometheus.Counter
	RunActive   prometheus.Gauge
	RunDuration prometheus.Histogram

	// Artifact metrics.
	ChartsRendered prometheus.Counter
	ChartsSkipped  prometheus.Counter
	ExportsWritten prometheus.Counter
}

// NewMetrics creates and registers all run metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsFetched,
		m.RowsDropped,
		m.RowsCleaned,
		m.RunActive,
		m.RunDuration,
		m.ChartsRendered,
		m.ChartsSkipped,
		m.ExportsWritten,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_trends",
			Name:      "rows_fetched_total",
			Help:      "Total raw rows read from the dataset source.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_trends",
			Name:      "rows_dropped_total",
			Help:      "Total rows dropped during cleaning for missing required fields.",
		}),
		RowsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_trends",
			Name:      "rows_cleaned_total",
			Help:      "Total rows surviving cleaning.",
		}),
		RunActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "covid_trends",
			Name:      "run_active",
			Help:      "1 while the analysis run is in progress.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "covid_trends",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete analysis run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		ChartsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_trends",
			Name:      "charts_rendered_total",
			Help:      "Total chart and map artifacts written.",
		}),
		ChartsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_trends",
			Name:      "charts_skipped_total",
			Help:      "Total chart artifacts skipped due to missing metrics or render failures.",
		}),
		ExportsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_trends",
			Name:      "exports_written_total",
			Help:      "Total tabular export artifacts written.",
		}),
	}
}
