// Package observability provides Prometheus metrics and OpenTelemetry tracing for locator runs.
//
// Metrics are collected in-process and, because the CLI exits after one run, exported by
// writing a Prometheus textfile rather than serving /metrics. Tracing emits one span per
// pipeline stage to either a stdout exporter or an OTLP gRPC collector.
package observability
