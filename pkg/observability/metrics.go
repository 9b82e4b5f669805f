package observability

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "espalier"

// Metrics holds the Prometheus collectors fed by menu lifecycle events.
type Metrics struct {
	Decodes        *prometheus.CounterVec
	Renders        *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	StateUsage     *prometheus.HistogramVec
	Effects        *prometheus.CounterVec
	Overflows      *prometheus.CounterVec
	Drops          *prometheus.CounterVec
	Errors         *prometheus.CounterVec
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	namespace string
}

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) {
		c.namespace = ns
	}
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	cfg := metricsConfig{namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(&cfg)
	}
	ns := cfg.namespace

	m := &Metrics{
		Decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "decodes_total",
			Help:      "States decoded from interactions",
		}, []string{"menu", "component"}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "renders_total",
			Help:      "Completed renders",
		}, []string{"menu"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "render_duration_seconds",
			Help:      "Duration of renders",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"menu"}),
		StateUsage: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "state_capacity_ratio",
			Help:      "Serialized state size over slot capacity at render",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"menu"}),
		Effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "effects_total",
			Help:      "Dispatched field effects",
		}, []string{"menu", "field"}),
		Overflows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "overflows_total",
			Help:      "Renders rejected because the state did not fit",
		}, []string{"menu"}),
		Drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "drops_total",
			Help:      "Interactions dropped without a menu",
		}, []string{"reason"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "errors_total",
			Help:      "Failed interaction cycles",
		}, []string{"menu", "component"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.Decodes, m.Renders, m.RenderDuration, m.StateUsage,
			m.Effects, m.Overflows, m.Drops, m.Errors,
		)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecode: func(_ context.Context, e *domain.DecodeEvent) {
			m.Decodes.WithLabelValues(e.MenuID, e.Component).Inc()
		},
		OnRender: func(_ context.Context, e *domain.RenderEvent) {
			m.Renders.WithLabelValues(e.MenuID).Inc()
			m.RenderDuration.WithLabelValues(e.MenuID).Observe(e.Duration.Seconds())
			if e.Capacity > 0 {
				m.StateUsage.WithLabelValues(e.MenuID).Observe(float64(e.StateSize) / float64(e.Capacity))
			}
		},
		OnEffect: func(_ context.Context, e *domain.EffectEvent) {
			m.Effects.WithLabelValues(e.MenuID, e.Field).Inc()
		},
		OnOverflow: func(_ context.Context, e *domain.OverflowEvent) {
			m.Overflows.WithLabelValues(e.MenuID).Inc()
		},
		OnDrop: func(_ context.Context, e *domain.DropEvent) {
			m.Drops.WithLabelValues(e.Reason).Inc()
		},
		OnError: func(_ context.Context, e *domain.ErrorEvent) {
			m.Errors.WithLabelValues(e.MenuID, e.Component).Inc()
		},
	}
}
