package google

import (
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
)

// Scopes are the OAuth scopes requested when authorizing an account.
//
// They cover:
//   - Gmail: read and label (modify), drafts (compose), send
//   - Google Calendar: create events
var Scopes = []string{
	gmail.GmailModifyScope,
	gmail.GmailComposeScope,
	gmail.GmailSendScope,
	calendar.CalendarEventsScope,
}
