package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: mailops)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// MetricsExporter specifies the metrics exporter type
	// Options: "prometheus", "otlp", "stdout", "none" (default: "none")
	MetricsExporter string

	// TracingExporter specifies the tracing exporter type
	// Options: "otlp", "stdout", "none" (default: "none")
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint
	// Example: "localhost:4318" (without protocol prefix)
	OTLPEndpoint string

	// OTLPInsecure controls whether to use insecure HTTP for OTLP export
	OTLPInsecure bool

	// MetricsFile receives the Prometheus text exposition when the
	// prometheus exporter is used. A one-shot CLI has no scrape endpoint,
	// so the file is meant for node_exporter's textfile collector.
	MetricsFile string

	// TraceFile receives spans from the stdout exporter. Empty means stderr.
	TraceFile string
}

// DefaultConfig returns a Config with defaults based on environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "mailops"),
		ServiceVersion:  "unknown",
		MetricsExporter: getEnvOrDefault("METRICS_EXPORTER", ExporterNone),
		TracingExporter: getEnvOrDefault("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:    getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:    getEnvBoolOrDefault("OTEL_EXPORTER_OTLP_INSECURE", false),
		MetricsFile:     getEnvOrDefault("METRICS_FILE", ""),
		TraceFile:       getEnvOrDefault("TRACE_FILE", ""),
	}
}

// Enabled reports whether any exporter is configured.
func (c *Config) Enabled() bool {
	return (c.MetricsExporter != "" && c.MetricsExporter != ExporterNone) ||
		(c.TracingExporter != "" && c.TracingExporter != ExporterNone)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validMetricsExporters := map[string]bool{ExporterPrometheus: true, ExporterOTLP: true, ExporterStdout: true, ExporterNone: true}
	if c.MetricsExporter != "" && !validMetricsExporters[c.MetricsExporter] {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout, none", c.MetricsExporter)
	}

	validTracingExporters := map[string]bool{ExporterOTLP: true, ExporterStdout: true, ExporterNone: true}
	if c.TracingExporter != "" && !validTracingExporters[c.TracingExporter] {
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.TracingExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
	}
	if c.MetricsExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
	}
	if c.MetricsExporter == ExporterPrometheus && c.MetricsFile == "" {
		return fmt.Errorf("a metrics file is required when using the prometheus exporter")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// Constants for metric label values.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusCancelled = "cancelled"

	// OAuth refresh results
	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
	OAuthResultValid   = "valid"

	// Google service names
	ServiceGmail    = "gmail"
	ServiceCalendar = "calendar"

	// Exporter types
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)
