// Package telemetry instruments a reago.Runtime with Prometheus
// metrics and OpenTelemetry traces, plugged in through runtime hooks.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reago-dev/reago"
)

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reago").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the pass-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reago",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a Prometheus collector over runtime hooks.
//
// Metrics collected:
//   - reago_writes_total: counter of signal writes
//   - reago_passes_total: counter of propagation passes
//   - reago_pass_updates: histogram of node updates per pass
//   - reago_pass_duration_seconds: histogram of pass wall time
//   - reago_node_updates_total: counter of node re-evaluations by kind
//   - reago_live_nodes: gauge of live nodes by kind
//   - reago_live_scopes: gauge of live scopes
type Metrics struct {
	writesTotal  prometheus.Counter
	passesTotal  prometheus.Counter
	passUpdates  prometheus.Histogram
	passDuration prometheus.Histogram
	nodeUpdates  *prometheus.CounterVec
	liveNodes    *prometheus.GaugeVec
	liveScopes   prometheus.Gauge
}

// NewMetrics registers the collector's metrics and returns it.
// Each runtime should get its own collector (or its own ConstLabels)
// when more than one runtime reports to the same registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		writesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of signal writes",
			ConstLabels: config.ConstLabels,
		}),

		passesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of propagation passes",
			ConstLabels: config.ConstLabels,
		}),

		passUpdates: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_updates",
			Help:        "Node updates performed per propagation pass",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 25, 50, 100, 250, 1000},
		}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Propagation pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		nodeUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "node_updates_total",
			Help:        "Total node re-evaluations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		liveNodes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_nodes",
			Help:        "Number of live nodes by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		liveScopes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_scopes",
			Help:        "Number of live scopes",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Hooks returns the runtime hooks that feed this collector. Pass them
// to reago.NewRuntime via reago.WithHooks, combining with other hooks
// through reago.CombineHooks when needed.
func (m *Metrics) Hooks() reago.Hooks {
	return reago.Hooks{
		OnNodeCreated: func(_ reago.NodeID, kind reago.NodeKind) {
			m.liveNodes.WithLabelValues(kind.String()).Inc()
		},
		OnNodeRemoved: func(_ reago.NodeID, kind reago.NodeKind) {
			m.liveNodes.WithLabelValues(kind.String()).Dec()
		},
		OnScopeCreated: func(reago.ScopeID) {
			m.liveScopes.Inc()
		},
		OnScopeDisposed: func(reago.ScopeID) {
			m.liveScopes.Dec()
		},
		OnWrite: func(reago.NodeID) {
			m.writesTotal.Inc()
		},
		OnNodeUpdate: func(_ reago.NodeID, kind reago.NodeKind, _ time.Duration) {
			m.nodeUpdates.WithLabelValues(kind.String()).Inc()
		},
		OnPassEnd: func(stats reago.PassStats) {
			m.passesTotal.Inc()
			m.passUpdates.Observe(float64(stats.Updates))
			m.passDuration.Observe(stats.Duration.Seconds())
		},
	}
}
