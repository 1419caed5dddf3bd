// Package instrumentation wires OpenTelemetry tracing and metrics into the
// mailops commands.
//
// Every Google API call is wrapped by Metrics.TrackGoogleAPI, which opens a
// client span named google.<service>.<operation> and records
// google_api_operations_total and google_api_operation_duration_seconds.
// Commands record command_runs_total with their outcome.
//
// Exporters are chosen through Config:
//
//	metrics: prometheus (written to a textfile on Shutdown), otlp, stdout, none
//	tracing: otlp, stdout (optionally into a file), none
//
// Nothing is exported by default; a nil or zero Metrics is safe to use.
//
// The Auditor writes one "audit" log record per outbound action. Recipient
// addresses are reduced to their domains unless PII logging is requested.
package instrumentation
