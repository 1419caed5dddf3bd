package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// Status says whether a booking is provisional or confirmed.
type Status string

const (
	StatusTBC       Status = "TBC"
	StatusConfirmed Status = "CONFIRMED"
)

// EventType is the kind of service booked.
type EventType string

const (
	// TypeEvent is event photo coverage.
	TypeEvent EventType = "EVENT"
	// TypeLive is on-site instant prints.
	TypeLive EventType = "LIVE"
)

// Booking is the operator's description of an event to put on a calendar.
// Date is YYYY-MM-DD; Start and End are 24-hour HH:MM wall-clock times in the
// configured time zone.
type Booking struct {
	Company     string
	POC         string
	Type        EventType
	Date        string
	Start       string
	End         string
	Location    string
	EmailID     string
	Description string
	Status      Status
}

// Routing is where a booking goes and how it is marked.
type Routing struct {
	CalendarID  string
	ColorID     string
	TitlePrefix string
	// Label names the calendar for humans.
	Label string
}

// EventSummary represents a created calendar event.
type EventSummary struct {
	ID          string
	CalendarID  string
	Summary     string
	Description string
	Location    string
	HTMLLink    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	ColorID     string
	Status      string
}

// toEventSummary converts a Google Calendar event to an EventSummary
func toEventSummary(calendarID string, event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{CalendarID: calendarID}
	}

	summary := EventSummary{
		ID:          event.Id,
		CalendarID:  calendarID,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		HTMLLink:    event.HtmlLink,
		ColorID:     event.ColorId,
		Status:      event.Status,
	}

	if event.Start != nil {
		summary.TimeZone = event.Start.TimeZone
		summary.Start = parseEventTime(event.Start)
	}
	if event.End != nil {
		summary.End = parseEventTime(event.End)
	}

	return summary
}

// parseEventTime reads an RFC 3339 date-time, a zone-less wall time in the
// event's time zone, or an all-day date.
func parseEventTime(dt *calendar.EventDateTime) time.Time {
	loc := time.UTC
	if dt.TimeZone != "" {
		if l, err := time.LoadLocation(dt.TimeZone); err == nil {
			loc = l
		}
	}

	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
		if t, err := time.ParseInLocation(wallTimeLayout, dt.DateTime, loc); err == nil {
			return t
		}
	} else if dt.Date != "" {
		if t, err := time.ParseInLocation(dateLayout, dt.Date, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
