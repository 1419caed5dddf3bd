package workflow

import (
	"context"
	"fmt"

	"github.com/livemoments/mailops/internal/calendar"
	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/logging"
	"github.com/livemoments/mailops/internal/result"
)

// AddEvent routes a booking to its calendar, asks for confirmation and
// creates the event.
func AddEvent(ctx context.Context, env Env, inserter EventInserter, b calendar.Booking) *result.Result {
	start := env.now()
	logger := logging.WithOperation(env.logger(), "add_event")

	cal := env.Config.Calendar
	event, routing, err := calendar.BuildEvent(b, cal)
	if err != nil {
		return result.Failure(err)
	}

	reminders := make([]string, len(cal.Reminders))
	for i, rem := range cal.Reminders {
		reminders[i] = rem.String()
	}
	ok, err := env.confirm(confirm.Request{
		Preview: confirm.Event{
			Title:       event.Summary,
			Calendar:    fmt.Sprintf("%s (%s)", routing.Label, routing.CalendarID),
			When:        fmt.Sprintf("%s %s-%s (%s)", b.Date, b.Start, b.End, cal.TimeZone),
			Location:    event.Location,
			Reminders:   reminders,
			Description: event.Description,
		}.String(),
		Question: "Create this event?",
		Verb:     confirm.VerbCreate,
	})
	if err != nil {
		return result.Failure(err)
	}
	if !ok {
		logger.Info("cancelled by operator")
		return result.Cancelled(result.KindEvent)
	}

	status, _ := calendar.ParseStatus(string(b.Status))
	created, err := inserter.InsertEvent(ctx, routing.CalendarID, event)
	var r *result.Result
	if err != nil {
		r = result.Failure(err)
	} else {
		r = &result.Result{
			Kind:          result.KindEvent,
			Success:       true,
			EventID:       created.ID,
			CalendarID:    routing.CalendarID,
			CalendarLabel: routing.Label,
			Title:         event.Summary,
			HTMLLink:      created.HTMLLink,
			Status:        string(status),
		}
	}

	env.audit(ctx, "add-event", []string{routing.CalendarID}, r.EventID, r, start)
	logger.Info("add event finished", logging.Status(r.Outcome()))
	return r
}
