// Package app assembles the webkit HTTP server: a chi router exposing the
// parameter check, base64url, markup and session helpers, instrumented with
// Prometheus metrics and OpenTelemetry tracing.
package app
