// Package capture records Gmail messages for later reference: it reduces
// them to flat Email records, keeps them in a JSON cache keyed by thread and
// message, and can append them to an mbox file.
package capture

import (
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/livemoments/mailops/internal/gmail"
)

// BodyLimit is the maximum number of characters of body text kept per email.
const BodyLimit = 5000

// DefaultMaxResults is how many messages a capture fetches by default.
const DefaultMaxResults = 5

// Email is a captured message.
type Email struct {
	CapturedAt  string `json:"captured_at"`
	MessageID   string `json:"message_id"`
	ThreadID    string `json:"thread_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	Cc          string `json:"cc"`
	Bcc         string `json:"bcc"`
	Subject     string `json:"subject"`
	Date        string `json:"date"`
	Body        string `json:"body"`
	SearchQuery string `json:"search_query"`
	Snippet     string `json:"snippet"`

	// RFCMessageID is the Message-ID header, used when exporting to mbox.
	RFCMessageID string `json:"rfc_message_id,omitempty"`
}

// FromMessage builds an Email from a message fetched in full format.
func FromMessage(msg *gmailapi.Message, query string, capturedAt time.Time) Email {
	h := gmail.Headers(msg, "From", "To", "Cc", "Bcc", "Subject", "Date", "Message-ID")

	return Email{
		CapturedAt:   capturedAt.Format("2006-01-02T15:04:05.000000"),
		MessageID:    msg.Id,
		ThreadID:     msg.ThreadId,
		From:         h["from"],
		To:           h["to"],
		Cc:           h["cc"],
		Bcc:          h["bcc"],
		Subject:      h["subject"],
		Date:         h["date"],
		Body:         Truncate(gmail.Body(msg.Payload), BodyLimit),
		SearchQuery:  query,
		Snippet:      msg.Snippet,
		RFCMessageID: h["message-id"],
	}
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Key identifies an email in the cache: the thread id, an underscore and
// the first eight characters of the message id.
func Key(e Email) string {
	id := e.MessageID
	if len(id) > 8 {
		id = id[:8]
	}
	return e.ThreadID + "_" + id
}
