// Package middleware provides observability middleware for the event
// dispatch pipeline: Prometheus metrics and OpenTelemetry tracing.
//
// Both constructors return a dispatch.Middleware and are configured
// with option functions. Install them on the router:
//
//	r := dispatch.NewRouter(session,
//	    dispatch.WithMiddleware(
//	        middleware.Prometheus(),
//	        middleware.OpenTelemetry(),
//	    ),
//	)
package middleware
