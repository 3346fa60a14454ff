package middleware

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/canopy-ui/canopy/pkg/dispatch"
)

// Default tracer name for canopy applications.
const defaultTracerName = "canopy"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "canopy").
	TracerName string

	// Filter determines which events to trace. Return true to trace
	// the event. If nil, all events are traced.
	Filter func(nodeID, eventType string) bool

	// AttributeExtractor extracts custom attributes per event.
	AttributeExtractor func(nodeID, eventType string, raw *dispatch.RawEvent) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) { c.TracerName = name }
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(nodeID, eventType string) bool) OTelOption {
	return func(c *OTelConfig) { c.Filter = filter }
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(fn func(nodeID, eventType string, raw *dispatch.RawEvent) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) { c.AttributeExtractor = fn }
}

// OpenTelemetry creates middleware that traces every dispatched event.
// One span per event, named after the event type, carrying the target
// identifier and the bubbles flag. Dropped events are recorded as
// events, handler failures set the span status to error.
//
// The tracer comes from the global tracer provider; configure it in
// main() before serving.
func OpenTelemetry(opts ...OTelOption) dispatch.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx context.Context, nodeID, eventType string, raw *dispatch.RawEvent) error {
			if config.Filter != nil && !config.Filter(nodeID, eventType) {
				return next(ctx, nodeID, eventType, raw)
			}

			attrs := []attribute.KeyValue{
				attribute.String("canopy.event_type", eventType),
				attribute.String("canopy.target", nodeID),
			}
			if raw != nil {
				attrs = append(attrs, attribute.Bool("canopy.bubbles", raw.Bubbles))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(nodeID, eventType, raw)...)
			}

			spanCtx, span := config.tracer.Start(ctx, "canopy."+eventType,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			err := next(spanCtx, nodeID, eventType, raw)
			switch {
			case err == nil:
				span.SetStatus(codes.Ok, "")
			case errors.Is(err, dispatch.ErrUnknownTarget):
				span.AddEvent("dropped", trace.WithAttributes(
					attribute.String("canopy.drop_reason", "unknown target"),
				))
				span.SetStatus(codes.Ok, "")
			default:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		}
	}
}
