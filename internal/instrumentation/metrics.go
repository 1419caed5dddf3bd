package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrCommand   = "command"
)

// Metrics provides methods for recording observability metrics.
// A zero or nil Metrics records nothing.
type Metrics struct {
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	oauthTokenRefreshTotal metric.Int64Counter

	commandRunsTotal metric.Int64Counter
	commandDuration  metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.googleAPIOperationsTotal, err = meter.Int64Counter(
		"google_api_operations_total",
		metric.WithDescription("Total number of Google API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operations_total counter: %w", err)
	}

	m.googleAPIOperationDuration, err = meter.Float64Histogram(
		"google_api_operation_duration_seconds",
		metric.WithDescription("Google API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operation_duration_seconds histogram: %w", err)
	}

	m.oauthTokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of stored credential checks by refresh outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	m.commandRunsTotal, err = meter.Int64Counter(
		"command_runs_total",
		metric.WithDescription("Total number of CLI command runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create command_runs_total counter: %w", err)
	}

	m.commandDuration, err = meter.Float64Histogram(
		"command_duration_seconds",
		metric.WithDescription("CLI command duration in seconds, including operator confirmation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create command_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordGoogleAPIOperation records a Google API operation with service, operation,
// status, and duration.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m == nil || m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)

	m.googleAPIOperationsTotal.Add(ctx, 1, attrs)
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordOAuthTokenRefresh records the outcome of loading a stored credential.
// Result should be one of: "valid", "success", "failure"
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.oauthTokenRefreshTotal == nil {
		return
	}
	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordCommand records a finished CLI command.
// Status should be one of: "success", "error", "cancelled"
func (m *Metrics) RecordCommand(ctx context.Context, command, status string, duration time.Duration) {
	if m == nil || m.commandRunsTotal == nil || m.commandDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrCommand, command),
		attribute.String(attrStatus, status),
	)

	m.commandRunsTotal.Add(ctx, 1, attrs)
	m.commandDuration.Record(ctx, duration.Seconds(), attrs)
}

// TrackGoogleAPI starts a client span for a Google API call. The returned
// function ends the span and records the operation metrics; pass it the
// call's error.
func (m *Metrics) TrackGoogleAPI(ctx context.Context, service, operation string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := StartGoogleAPISpan(ctx, service, operation)

	return ctx, func(err error) {
		status := StatusSuccess
		if err != nil {
			status = StatusError
			SetSpanError(span, err)
		} else {
			SetSpanSuccess(span)
		}
		span.End()
		m.RecordGoogleAPIOperation(ctx, service, operation, status, time.Since(start))
	}
}
