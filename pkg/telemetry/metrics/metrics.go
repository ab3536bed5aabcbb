package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/usage"
)

// Config configures metric naming.
type Config struct {
	// Namespace is the metric name prefix. Default: "polaris".
	Namespace string

	// Subsystem groups the metrics. Default: "provider".
	Subsystem string
}

// Metrics holds the Prometheus collectors for provider operations.
type Metrics struct {
	registry *prometheus.Registry

	discoveryTotal *prometheus.CounterVec
	costTotal      *prometheus.CounterVec
	costPerCall    *prometheus.HistogramVec
	tokensTotal    *prometheus.CounterVec
}

// Discovery outcome label values.
const (
	outcomeError = "error"
)

// New creates and registers the collectors on a fresh registry.
func New(cfg Config) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "polaris"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "provider"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		discoveryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "discovery_total",
				Help:      "Model discovery runs by provider and result source",
			},
			[]string{"provider", "source"},
		),

		costTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_total",
				Help:      "Total call cost in USD by provider and model",
			},
			[]string{"provider", "model"},
		),

		costPerCall: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_per_call",
				Help:      "Cost distribution per call in USD",
				// Buckets sized for LLM call pricing.
				Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"provider", "model"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Token counters by provider, model, and token class",
			},
			[]string{"provider", "model", "class"},
		),
	}

	m.registry.MustRegister(
		m.discoveryTotal,
		m.costTotal,
		m.costPerCall,
		m.tokensTotal,
	)

	return m
}

// RecordDiscovery records one discovery run.
func (m *Metrics) RecordDiscovery(provider string, result providers.ModelListResult) {
	source := string(result.Source)
	if !result.Success {
		source = outcomeError
	}
	m.discoveryTotal.WithLabelValues(provider, source).Inc()
}

// RecordReport records the cost and token counters from a usage report.
// Negative counters (a negative sent-token count is possible, see
// usage.Report) are skipped: Prometheus counters cannot decrease.
func (m *Metrics) RecordReport(report *usage.Report) {
	if report.Cost > 0 {
		m.costTotal.WithLabelValues(report.Provider, report.Model).Add(report.Cost)
		m.costPerCall.WithLabelValues(report.Provider, report.Model).Observe(report.Cost)
	}

	classes := map[string]int{
		"sent":        report.SentTokens,
		"received":    report.ReceivedTokens,
		"cache_write": report.CacheWriteTokens,
		"cache_read":  report.CacheReadTokens,
	}
	for class, count := range classes {
		if count > 0 {
			m.tokensTotal.WithLabelValues(report.Provider, report.Model, class).Add(float64(count))
		}
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
