package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the router's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pagenav").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures router metrics.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus collectors a Router reports to.
// One Metrics value may be shared by several routers.
type Metrics struct {
	navigations     *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	visiblePages    prometheus.Gauge
	historyDepth    prometheus.Gauge
	staleSignals    prometheus.Counter
}

// NewMetrics registers the router collectors.
//
// Metrics collected:
//   - pagenav_navigations_total: navigations by kind and result
//   - pagenav_resolve_duration_seconds: resolver latency by result
//   - pagenav_visible_pages: size of the visible-page set
//   - pagenav_history_depth: history stack length
//   - pagenav_stale_transition_signals_total: transition ends for unknown pages
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "pagenav",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "navigations_total",
			Help:        "Total number of navigation calls by kind and result",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "result"}),

		resolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "resolve_duration_seconds",
			Help:        "Time spent resolving routes missing from the registry",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"result"}),

		visiblePages: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "visible_pages",
			Help:        "Number of pages in the visible-page set",
			ConstLabels: config.ConstLabels,
		}),

		historyDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "history_depth",
			Help:        "Number of entries in the history stack",
			ConstLabels: config.ConstLabels,
		}),

		staleSignals: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "stale_transition_signals_total",
			Help:        "Transition-end signals for pages no longer in the visible set",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) navigation(kind RouteKind, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case IsHistoryEmpty(err):
		result = "history_empty"
	case IsRouteError(err):
		result = "unresolved"
	default:
		result = "error"
	}
	m.navigations.WithLabelValues(kind.String(), result).Inc()
}

func (m *Metrics) resolved(seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.resolveDuration.WithLabelValues(result).Observe(seconds)
}

func (m *Metrics) sizes(pages, depth int) {
	if m == nil {
		return
	}
	m.visiblePages.Set(float64(pages))
	m.historyDepth.Set(float64(depth))
}

func (m *Metrics) stale() {
	if m == nil {
		return
	}
	m.staleSignals.Inc()
}
