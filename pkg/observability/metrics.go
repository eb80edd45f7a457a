package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/optirail/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the trace collectors.
type Metrics struct {
	Traces     *prometheus.CounterVec
	Duration   prometheus.Histogram
	Components prometheus.Histogram
	Elements   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers the collectors on reg.
// A *prometheus.Registry is also used as the gatherer for Handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optirail_traces_total",
				Help: "Total number of trace requests by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optirail_trace_duration_seconds",
			Help:    "Duration of trace computations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Components: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optirail_trace_components",
			Help:    "Number of components per traced rail",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11),
		}),
		Elements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optirail_elements_total",
				Help: "Total number of traced elements by component type",
			},
			[]string{"type"},
		),
		gatherer: prometheus.DefaultGatherer,
	}

	reg.MustRegister(m.Traces, m.Duration, m.Components, m.Elements)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Hooks returns lifecycle hooks that record every trace.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			m.Traces.WithLabelValues("ok").Inc()
			m.Duration.Observe(e.Duration.Seconds())
			m.Components.Observe(float64(e.Components))
			for _, t := range e.Types {
				m.Elements.WithLabelValues(t).Inc()
			}
		},
		OnTraceError: func(ctx context.Context, e *domain.TraceEvent) {
			m.Traces.WithLabelValues(domain.Code(e.Err)).Inc()
		},
	}
}

// Handler serves the registered collectors.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Chain merges hooks so several observers can watch the same engine.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			for _, h := range hooks {
				if h.OnTrace != nil {
					h.OnTrace(ctx, e)
				}
			}
		},
		OnTraceError: func(ctx context.Context, e *domain.TraceEvent) {
			for _, h := range hooks {
				if h.OnTraceError != nil {
					h.OnTraceError(ctx, e)
				}
			}
		},
	}
}
