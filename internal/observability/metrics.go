package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// batch run. Each Metrics owns its own registry, so tests can create as
// many instances as they need without "already registered" panics.
type Metrics struct {
	FilesDiscovered prometheus.Gauge
	FilesSelected   prometheus.Gauge
	FilesProcessed  prometheus.Counter
	RowsNormalized  prometheus.Counter
	RowsDropped     prometheus.Counter

	// FileOutcomes counts terminal per-file outcomes, labeled by outcome
	// (published, skipped_empty, schema_error, ...).
	FileOutcomes *prometheus.CounterVec

	FileDuration    prometheus.Histogram
	PublishDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates and registers all batch metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesDiscovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gsod_etl",
			Name:      "files_discovered",
			Help:      "Station CSVs found in the input directory.",
		}),
		FilesSelected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gsod_etl",
			Name:      "files_selected",
			Help:      "Station CSVs selected for processing after the file cap.",
		}),
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gsod_etl",
			Name:      "files_processed_total",
			Help:      "Station files that reached a terminal outcome.",
		}),
		RowsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gsod_etl",
			Name:      "rows_normalized_total",
			Help:      "Observation rows retained by normalization.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gsod_etl",
			Name:      "rows_dropped_total",
			Help:      "Observation rows dropped for unparseable dates.",
		}),
		FileOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsod_etl",
			Name:      "file_outcomes_total",
			Help:      "Terminal per-file outcomes by kind.",
		}, []string{"outcome"}),
		FileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gsod_etl",
			Name:      "file_duration_seconds",
			Help:      "Duration of one complete parse-normalize-write-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gsod_etl",
			Name:      "publish_duration_seconds",
			Help:      "Duration of the S3 upload per station file.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FilesDiscovered,
		m.FilesSelected,
		m.FilesProcessed,
		m.RowsNormalized,
		m.RowsDropped,
		m.FileOutcomes,
		m.FileDuration,
		m.PublishDuration,
	)

	return m
}

// Push reports the run's metrics to a Pushgateway. A batch process has no
// long-lived scrape surface, so metrics are pushed once after the run.
func (m *Metrics) Push(url string) error {
	return push.New(url, "gsod_archive_etl").Gatherer(m.registry).Push()
}
