package confirm

import (
	"strings"
)

const width = 70

var (
	heavyRule = strings.Repeat("=", width)
	lightRule = strings.Repeat("-", width)
)

// Mail is the preview of an outgoing email or draft.
type Mail struct {
	Title   string
	From    string
	To      string
	Cc      string
	Bcc     string
	Subject string
	Body    string
}

func (m Mail) String() string {
	var b strings.Builder
	b.WriteString("\n" + heavyRule + "\n")
	b.WriteString(m.Title + "\n")
	b.WriteString(heavyRule + "\n")
	if m.From != "" {
		b.WriteString("From: " + m.From + "\n")
	}
	b.WriteString("To: " + m.To + "\n")
	if m.Cc != "" {
		b.WriteString("Cc: " + m.Cc + "\n")
	}
	if m.Bcc != "" {
		b.WriteString("Bcc: " + m.Bcc + "\n")
	}
	b.WriteString("Subject: " + m.Subject + "\n")
	b.WriteString(lightRule + "\n")
	b.WriteString(m.Body + "\n")
	b.WriteString(heavyRule + "\n\n")
	return b.String()
}

// Event is the preview of a calendar event about to be created.
type Event struct {
	Title       string
	Calendar    string
	When        string
	Location    string
	Reminders   []string
	Description string
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString("\n" + heavyRule + "\n")
	b.WriteString("CALENDAR EVENT PREVIEW\n")
	b.WriteString(heavyRule + "\n")
	b.WriteString("Title: " + e.Title + "\n")
	b.WriteString("Calendar: " + e.Calendar + "\n")
	b.WriteString("When: " + e.When + "\n")
	b.WriteString("Location: " + e.Location + "\n")
	if len(e.Reminders) > 0 {
		b.WriteString("Reminders: " + strings.Join(e.Reminders, ", ") + "\n")
	}
	b.WriteString(lightRule + "\n")
	b.WriteString(e.Description + "\n")
	b.WriteString(heavyRule + "\n\n")
	return b.String()
}
