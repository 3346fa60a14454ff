package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/canopy-ui/canopy/pkg/dispatch"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "canopy").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "canopy",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// dispatchMetrics holds the Prometheus collectors for one middleware
// instance.
type dispatchMetrics struct {
	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	eventsDropped prometheus.Counter
}

func newDispatchMetrics(config MetricsConfig) *dispatchMetrics {
	factory := promauto.With(config.Registry)

	return &dispatchMetrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of view events dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "View event dispatch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		eventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_dropped_total",
			Help:        "View events dropped for unknown targets",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ClicksSynthesized returns a click-synthesis hook incrementing a
// counter per synthesized click. Install it on the router:
//
//	dispatch.WithSynthesisHook(middleware.ClicksSynthesized())
func ClicksSynthesized(opts ...MetricsOption) func(targetID string) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	counter := promauto.With(config.Registry).NewCounter(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "clicks_synthesized_total",
		Help:        "Clicks synthesized from paired press/release events",
		ConstLabels: config.ConstLabels,
	})
	return func(string) { counter.Inc() }
}

// Prometheus creates middleware recording a counter and a duration
// histogram per event type. Events dropped for unknown targets count
// both in events_total with status "dropped" and in
// events_dropped_total.
func Prometheus(opts ...MetricsOption) dispatch.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newDispatchMetrics(config)

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx context.Context, nodeID, eventType string, raw *dispatch.RawEvent) error {
			start := time.Now()
			err := next(ctx, nodeID, eventType, raw)
			m.eventDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())

			switch {
			case err == nil:
				m.eventsTotal.WithLabelValues(eventType, "ok").Inc()
			case errors.Is(err, dispatch.ErrUnknownTarget):
				m.eventsTotal.WithLabelValues(eventType, "dropped").Inc()
				m.eventsDropped.Inc()
			default:
				m.eventsTotal.WithLabelValues(eventType, "error").Inc()
			}
			return err
		}
	}
}
