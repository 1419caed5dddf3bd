package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/livemoments/mailops/internal/config"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	wallTimeLayout = "2006-01-02T15:04:05"
)

// UsageError reports an invalid booking field supplied by the operator.
type UsageError struct {
	Field string
	Err   error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ParseStatus accepts TBC or CONFIRMED in any case.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusTBC:
		return StatusTBC, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	}
	return "", &UsageError{Field: "status", Err: fmt.Errorf("%q is not one of TBC, CONFIRMED", s)}
}

// ParseEventType accepts EVENT or LIVE in any case.
func ParseEventType(s string) (EventType, error) {
	switch EventType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeEvent:
		return TypeEvent, nil
	case TypeLive:
		return TypeLive, nil
	}
	return "", &UsageError{Field: "type", Err: fmt.Errorf("%q is not one of EVENT, LIVE", s)}
}

// Route picks the destination calendar for a booking status. Only a confirmed
// booking goes unmarked to the main calendar; any other status is treated as
// provisional and goes to the admin calendar with a color and title prefix.
func Route(status Status, cfg config.Calendar) Routing {
	if status != StatusConfirmed {
		return Routing{
			CalendarID:  cfg.AdminID,
			ColorID:     cfg.ProvisionalColor,
			TitlePrefix: cfg.ProvisionalPrefix,
			Label:       "Administration (Purple)",
		}
	}
	return Routing{
		CalendarID: cfg.MainID,
		Label:      "Main",
	}
}

// Title formats the event title as "{prefix}{company} - {poc} ({TYPE})".
func Title(b Booking, r Routing) string {
	return fmt.Sprintf("%s%s - %s (%s)", r.TitlePrefix, b.Company, b.POC, strings.ToUpper(string(b.Type)))
}

// Description joins the traceability lines of a booking with blank lines.
func Description(b Booking) string {
	var parts []string
	if b.EmailID != "" {
		parts = append(parts, "Email ID: "+b.EmailID)
	}
	if b.Description != "" {
		parts = append(parts, b.Description)
	}
	parts = append(parts,
		"Status: "+string(b.Status),
		"POC: "+b.POC,
	)
	return strings.Join(parts, "\n\n")
}

// WallTimes validates the booking date and clock times and returns them as
// zone-less ISO date-times, e.g. 2026-05-21T09:00:00.
func WallTimes(b Booking) (start, end string, err error) {
	day, err := time.Parse(dateLayout, b.Date)
	if err != nil {
		return "", "", &UsageError{Field: "date", Err: fmt.Errorf("%q is not YYYY-MM-DD", b.Date)}
	}
	s, err := time.Parse(clockLayout, b.Start)
	if err != nil {
		return "", "", &UsageError{Field: "start", Err: fmt.Errorf("%q is not HH:MM", b.Start)}
	}
	e, err := time.Parse(clockLayout, b.End)
	if err != nil {
		return "", "", &UsageError{Field: "end", Err: fmt.Errorf("%q is not HH:MM", b.End)}
	}
	if e.Before(s) {
		return "", "", &UsageError{Field: "end", Err: fmt.Errorf("end time %s is before start time %s", b.End, b.Start)}
	}

	at := func(clock time.Time) string {
		return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC).Format(wallTimeLayout)
	}
	return at(s), at(e), nil
}

// Validate checks the fields every booking needs.
func (b Booking) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"company", b.Company},
		{"poc", b.POC},
		{"location", b.Location},
		{"email id", b.EmailID},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, &UsageError{Field: f.name, Err: errors.New("must not be empty")})
		}
	}
	if _, err := ParseEventType(string(b.Type)); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseStatus(string(b.Status)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BuildEvent turns a booking into the Calendar API event and the routing it
// must be inserted with. It performs no I/O.
func BuildEvent(b Booking, cfg config.Calendar) (*calendar.Event, Routing, error) {
	if err := b.Validate(); err != nil {
		return nil, Routing{}, err
	}
	b.Status, _ = ParseStatus(string(b.Status))
	b.Type, _ = ParseEventType(string(b.Type))

	start, end, err := WallTimes(b)
	if err != nil {
		return nil, Routing{}, err
	}

	routing := Route(b.Status, cfg)

	overrides := make([]*calendar.EventReminder, 0, len(cfg.Reminders))
	for _, r := range cfg.Reminders {
		overrides = append(overrides, &calendar.EventReminder{Method: r.Method, Minutes: r.Minutes()})
	}

	event := &calendar.Event{
		Summary:     Title(b, routing),
		Location:    b.Location,
		Description: Description(b),
		Start:       &calendar.EventDateTime{DateTime: start, TimeZone: cfg.TimeZone},
		End:         &calendar.EventDateTime{DateTime: end, TimeZone: cfg.TimeZone},
		ColorId:     routing.ColorID,
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
	}
	return event, routing, nil
}
