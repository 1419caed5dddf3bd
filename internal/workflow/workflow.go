// Package workflow runs the commands end to end: gather inputs, build the
// message or event, ask for confirmation, make the remote call and shape the
// result. Remote services are reached through small interfaces so tests can
// substitute stubs.
package workflow

import (
	"context"
	"io"
	"log/slog"
	"time"

	calendarapi "google.golang.org/api/calendar/v3"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/livemoments/mailops/internal/calendar"
	"github.com/livemoments/mailops/internal/config"
	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/instrumentation"
	"github.com/livemoments/mailops/internal/result"
)

// Mailer is the part of the Gmail API used to send mail.
type Mailer interface {
	Profile(ctx context.Context) (string, error)
	Send(ctx context.Context, msg *gmailapi.Message) (*gmailapi.Message, error)
	CreateDraft(ctx context.Context, msg *gmailapi.Message) (*gmailapi.Draft, error)
	GetThread(ctx context.Context, threadID string) (*gmailapi.Thread, error)
}

// Searcher is the part of the Gmail API used to read mail.
type Searcher interface {
	ListMessages(ctx context.Context, q string, maxResults int64) ([]*gmailapi.Message, error)
	GetMessage(ctx context.Context, messageID string) (*gmailapi.Message, error)
}

// EventInserter is the part of the Calendar API used to create events.
type EventInserter interface {
	InsertEvent(ctx context.Context, calendarID string, event *calendarapi.Event) (calendar.EventSummary, error)
}

// Env carries what every workflow needs besides its remote service.
type Env struct {
	Config    config.Config
	Confirmer confirm.Confirmer
	Logger    *slog.Logger
	Auditor   *instrumentation.Auditor
	// Now defaults to time.Now.
	Now func() time.Time
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) confirm(req confirm.Request) (bool, error) {
	if e.Confirmer == nil {
		return confirm.Always{}.Confirm(req)
	}
	return e.Confirmer.Confirm(req)
}

// audit records a finished mutating command.
func (e Env) audit(ctx context.Context, command string, recipients []string, resourceID string, r *result.Result, start time.Time) {
	e.Auditor.Record(ctx, instrumentation.Action{
		Command:    command,
		Account:    e.Config.Account,
		Recipients: recipients,
		ResourceID: resourceID,
		Outcome:    r.Outcome(),
		Error:      r.Error,
		Duration:   e.now().Sub(start),
	})
}
