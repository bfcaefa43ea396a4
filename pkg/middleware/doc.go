// Package middleware provides observability middleware for webkit handlers.
//
// This package includes:
//   - OpenTelemetry distributed tracing middleware
//   - Prometheus metrics middleware and helper observers
//
// Both are plain func(http.Handler) http.Handler values and plug into chi or
// any other router:
//
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("my-app")))
//	r.Use(metrics.Handler)
//
// # Prometheus Metrics
//
//   - webkit_requests_total: Requests by route pattern and status code
//   - webkit_request_duration_seconds: Request duration histogram
//   - webkit_param_checks_total: Parameter checks by result
//   - webkit_sessions_started_total: Started sessions, new or resumed
//   - webkit_decode_errors_total: Rejected base64url inputs
//
// The observer methods match the hooks exposed by the params and session
// packages:
//
//	params.Require(required, params.WithObserver(metrics.ObserveParamCheck))
//	session.NewManager(session.Config{OnStart: metrics.ObserveSessionStart})
//
// # OpenTelemetry
//
// The tracer uses the global OpenTelemetry tracer provider. Handlers reach the
// request span through trace.SpanFromContext(r.Context()).
package middleware
