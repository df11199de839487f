package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gwmap"

// Metrics holds the Prometheus counters, histograms, and gauges for the map build.
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsRejected    *prometheus.CounterVec // labels: reason={missing,blank,invalid_coordinate,out_of_range}
	RecordsRetained prometheus.Gauge
	FeaturesBuilt   *prometheus.CounterVec // labels: layer
	DocumentBytes   prometheus.Gauge
	LastRunSuccess  prometheus.Gauge

	// StageDuration is labelled by stage={extract,transform,render,load}.
	StageDuration *prometheus.HistogramVec
}

var stageBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Total data rows read from the survey sheet.",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Rows dropped by the completeness gate, by reason.",
		}, []string{"reason"}),
		RecordsRetained: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_retained",
			Help:      "Study records retained by the most recent build.",
		}),
		FeaturesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_built_total",
			Help:      "Map features placed, by layer.",
		}, []string{"layer"}),
		DocumentBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "document_bytes",
			Help:      "Size of the most recently rendered HTML document.",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 when the most recent build succeeded, 0 otherwise.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each build stage.",
			Buckets:   stageBuckets,
		}, []string{"stage"}),
	}
}

// NewMetrics creates and registers all build metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsRejected,
		m.RecordsRetained,
		m.FeaturesBuilt,
		m.DocumentBytes,
		m.LastRunSuccess,
		m.StageDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// multiple tests can each own a set.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
