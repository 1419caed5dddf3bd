// Package result is the outcome of one command run: what it printed, what it
// returned as JSON and which exit code the process ends with.
package result

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/livemoments/mailops/internal/capture"
)

// Kind tells the renderer which success message to use.
type Kind string

const (
	KindSent         Kind = "sent"
	KindDraft        Kind = "draft"
	KindNotification Kind = "notification"
	KindEvent        Kind = "event"
	KindCapture      Kind = "capture"
	KindCancelled    Kind = "cancelled"
	KindFailure      Kind = "failure"
)

// CancelledMessage is the error text reported when the operator declines.
const CancelledMessage = "User cancelled"

// Result is the single outcome of a command. Exactly one of success,
// cancellation or failure holds: Success is true only for the first, and
// PreviewOnly only for the second.
type Result struct {
	Kind Kind `json:"-"`
	// Action is the kind of success that was abandoned by a cancellation.
	Action Kind `json:"-"`

	Success bool `json:"success"`

	// Mail
	MessageID string `json:"message_id,omitempty"`
	ThreadID  string `json:"thread_id,omitempty"`
	DraftID   string `json:"draft_id,omitempty"`
	Sender    string `json:"sender,omitempty"`
	To        string `json:"to,omitempty"`
	Subject   string `json:"subject,omitempty"`
	IsDraft   bool   `json:"is_draft,omitempty"`

	// Designer notification
	Client string `json:"client,omitempty"`
	POC    string `json:"poc,omitempty"`

	// Calendar
	EventID       string `json:"event_id,omitempty"`
	CalendarID    string `json:"calendar_id,omitempty"`
	CalendarLabel string `json:"-"`
	Title         string `json:"title,omitempty"`
	HTMLLink      string `json:"html_link,omitempty"`
	Status        string `json:"status,omitempty"`

	// Capture
	Query     string          `json:"query,omitempty"`
	Emails    []capture.Email `json:"emails,omitempty"`
	CachePath string          `json:"cache_path,omitempty"`
	MboxPath  string          `json:"mbox_path,omitempty"`

	Error       string `json:"error,omitempty"`
	PreviewOnly bool   `json:"preview_only,omitempty"`
}

// Cancelled is the result of a declined confirmation.
func Cancelled(action Kind) *Result {
	return &Result{Kind: KindCancelled, Action: action, Error: CancelledMessage, PreviewOnly: true}
}

// Failure wraps err as a failed result.
func Failure(err error) *Result {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Result{Kind: KindFailure, Error: msg}
}

// ExitCode is 0 for success and 1 otherwise.
func (r *Result) ExitCode() int {
	if r != nil && r.Success {
		return 0
	}
	return 1
}

// Outcome is the status label used in logs and metrics.
func (r *Result) Outcome() string {
	switch {
	case r.Success:
		return "success"
	case r.PreviewOnly:
		return "cancelled"
	default:
		return "error"
	}
}

// WriteJSON writes r as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes the human-readable summary of r.
func (r *Result) WriteText(w io.Writer) error {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	switch {
	case r.Kind == KindFailure || (!r.Success && !r.PreviewOnly):
		line("Failed: %s", r.Error)

	case r.PreviewOnly:
		what := "Email not saved/sent."
		switch r.Action {
		case KindNotification:
			what = "Notification not sent."
		case KindEvent:
			what = "Event not created."
		}
		line("Preview shown. %s", what)

	case r.Kind == KindSent:
		line("Email sent successfully!")
		line("   Message ID: %s", r.MessageID)
		r.mailLines(line)

	case r.Kind == KindDraft:
		line("Draft saved successfully!")
		line("   Draft ID: %s", r.DraftID)
		r.mailLines(line)

	case r.Kind == KindNotification:
		if r.IsDraft {
			line("Designer notification saved as draft!")
			line("   Draft ID: %s", r.DraftID)
		} else {
			line("Designer notification sent successfully!")
			line("   Message ID: %s", r.MessageID)
		}
		line("   Designer: %s", r.To)
		line("   Client: %s (%s)", r.Client, r.POC)
		line("   Subject: %s", r.Subject)

	case r.Kind == KindEvent:
		line("Event created successfully!")
		line("   Title: %s", r.Title)
		line("   Calendar: %s", r.CalendarLabel)
		line("   Link: %s", r.HTMLLink)

	case r.Kind == KindCapture:
		r.captureLines(line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Result) mailLines(line func(string, ...any)) {
	line("   From: %s", r.Sender)
	line("   To: %s", r.To)
	line("   Subject: %s", r.Subject)
}

// previewChars is how much of each captured body is shown.
const previewChars = 500

func (r *Result) captureLines(line func(string, ...any)) {
	if len(r.Emails) == 0 {
		line("No emails found for query: %s", r.Query)
		return
	}
	if r.CachePath != "" {
		line("Saved %d email(s) to cache: %s", len(r.Emails), r.CachePath)
	}
	if r.MboxPath != "" {
		line("Appended %d email(s) to mbox: %s", len(r.Emails), r.MboxPath)
	}

	rule := strings.Repeat("=", 60)
	for i, e := range r.Emails {
		cc := e.Cc
		if cc == "" {
			cc = "(none)"
		}
		line("")
		line("%s", rule)
		line("EMAIL #%d", i+1)
		line("%s", rule)
		line("Thread ID:  %s", e.ThreadID)
		line("Message ID: %s", e.MessageID)
		line("From:       %s", e.From)
		line("To:         %s", e.To)
		line("CC:         %s", cc)
		line("Subject:    %s", e.Subject)
		line("Date:       %s", e.Date)
		line("")
		line("Body Preview (first %d chars):", previewChars)
		line("%s...", capture.Truncate(e.Body, previewChars))
	}
}
