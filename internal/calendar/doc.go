// Package calendar turns booking details into Google Calendar events.
//
// Provisional (TBC) bookings are routed to the administration calendar with
// a color and a "TBC - " title prefix; confirmed bookings go to the main
// calendar. Times are kept as the wall-clock values the operator typed and
// sent together with an IANA time zone, so the event lands at exactly
// HH:MM local time regardless of the machine's zone.
//
// Example usage:
//
//	event, routing, err := calendar.BuildEvent(booking, cfg.Calendar)
//	if err != nil {
//	    return err
//	}
//	summary, err := client.InsertEvent(ctx, routing.CalendarID, event)
package calendar
