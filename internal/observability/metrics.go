// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the discovery pipeline.
// A nil *Metrics is valid and disables instrumentation.
type Metrics struct {
	RunsTotal          prometheus.Counter
	RunDuration        prometheus.Histogram
	WalletsAdded       prometheus.Counter
	WalletsPruned      prometheus.Counter
	CandidatesAnalyzed prometheus.Counter
	ItemErrors         prometheus.Counter
	RegistryLearned    prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on the given registerer.
// A nil registerer uses the default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "smartmoney_discovery"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total discovery runs completed.",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of discovery runs.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		WalletsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallets_added_total",
			Help:      "Learned wallets inserted into the registry.",
		}),
		WalletsPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallets_pruned_total",
			Help:      "Stale learned wallets removed from the registry.",
		}),
		CandidatesAnalyzed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_analyzed_total",
			Help:      "Candidate wallets that produced a profitability score.",
		}),
		ItemErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_errors_total",
			Help:      "Per-item failures absorbed during discovery runs.",
		}),
		RegistryLearned: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_learned",
			Help:      "Current count of learned registry entries.",
		}),
	}
}

// ObserveRun records the outcome of one discovery run.
func (m *Metrics) ObserveRun(durationSeconds float64, added, pruned, analyzed, itemErrors int) {
	if m == nil {
		return
	}
	m.RunsTotal.Inc()
	m.RunDuration.Observe(durationSeconds)
	m.WalletsAdded.Add(float64(added))
	m.WalletsPruned.Add(float64(pruned))
	m.CandidatesAnalyzed.Add(float64(analyzed))
	m.ItemErrors.Add(float64(itemErrors))
}

// SetRegistryLearned records the current learned-entry count.
func (m *Metrics) SetRegistryLearned(count int) {
	if m == nil {
		return
	}
	m.RegistryLearned.Set(float64(count))
}

// Handler returns an HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
