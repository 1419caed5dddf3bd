package instrumentation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/livemoments/mailops/internal/logging"
)

// Action captures one outbound operation (mail sent, draft saved, event
// created) for the audit trail. Recipient addresses are PII: LogAttrs only
// emits their domains, LogAuditAttrs emits them in full.
type Action struct {
	Command    string
	Account    string
	Recipients []string
	ResourceID string
	Outcome    string
	Error      string
	Duration   time.Duration
	TraceID    string
}

// LogAttrs returns cardinality-controlled attributes for general logs.
func (a *Action) LogAttrs() []slog.Attr {
	domains := make([]string, 0, len(a.Recipients))
	for _, r := range a.Recipients {
		domains = append(domains, logging.ExtractDomain(r))
	}

	attrs := []slog.Attr{
		slog.String("command", a.Command),
		logging.Domain(a.Account),
		slog.String("recipient_domains", strings.Join(domains, ",")),
		slog.String("outcome", a.Outcome),
		slog.Duration("duration", a.Duration),
	}
	return a.appendCommon(attrs)
}

// LogAuditAttrs returns the full attribute set, including addresses.
func (a *Action) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("command", a.Command),
		slog.String("account", a.Account),
		slog.String("recipients", strings.Join(a.Recipients, ",")),
		slog.String("outcome", a.Outcome),
		slog.Duration("duration", a.Duration),
	}
	return a.appendCommon(attrs)
}

func (a *Action) appendCommon(attrs []slog.Attr) []slog.Attr {
	if a.ResourceID != "" {
		attrs = append(attrs, slog.String("resource_id", a.ResourceID))
	}
	if a.Error != "" {
		attrs = append(attrs, slog.String("error", a.Error))
	}
	if a.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", a.TraceID))
	}
	return attrs
}

// Auditor writes Action records to a logger.
type Auditor struct {
	logger     *slog.Logger
	includePII bool
}

// NewAuditor returns an Auditor. A nil logger disables auditing.
func NewAuditor(logger *slog.Logger, includePII bool) *Auditor {
	return &Auditor{logger: logger, includePII: includePII}
}

// Record logs the action at info level under the "audit" message.
func (a *Auditor) Record(ctx context.Context, action Action) {
	if a == nil || a.logger == nil {
		return
	}
	if action.TraceID == "" {
		action.TraceID = GetTraceID(ctx)
	}

	attrs := action.LogAttrs()
	if a.includePII {
		attrs = action.LogAuditAttrs()
	}
	a.logger.LogAttrs(ctx, slog.LevelInfo, "audit", attrs...)
}
