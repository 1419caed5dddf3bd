package gmail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	gmail "google.golang.org/api/gmail/v1"
)

// Draft holds the fields an outbound message is built from.
type Draft struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string

	// ThreadID files the message under an existing Gmail conversation.
	ThreadID string
	// InReplyTo and References carry the RFC 5322 ids of the message being
	// answered.
	InReplyTo  string
	References string

	// Date defaults to the time the message is built.
	Date time.Time
}

// OutboundMessage is a validated message ready to be sent or saved as a
// draft. It cannot be modified after NewMessage returns it.
type OutboundMessage struct {
	from       *mail.Address
	to         []*mail.Address
	cc         []*mail.Address
	bcc        []*mail.Address
	subject    string
	body       string
	threadID   string
	inReplyTo  string
	references string
	date       time.Time
}

// NewMessage validates d and builds an OutboundMessage from it.
func NewMessage(d Draft) (*OutboundMessage, error) {
	if strings.TrimSpace(d.From) == "" {
		return nil, errors.New("sender is required")
	}
	if len(d.To) == 0 {
		return nil, errors.New("at least one recipient is required")
	}
	if strings.TrimSpace(d.Subject) == "" {
		return nil, errors.New("subject is required")
	}

	from, err := mail.ParseAddress(d.From)
	if err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", d.From, err)
	}
	to, err := parseAddresses("to", d.To)
	if err != nil {
		return nil, err
	}
	cc, err := parseAddresses("cc", d.Cc)
	if err != nil {
		return nil, err
	}
	bcc, err := parseAddresses("bcc", d.Bcc)
	if err != nil {
		return nil, err
	}

	date := d.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &OutboundMessage{
		from:       from,
		to:         to,
		cc:         cc,
		bcc:        bcc,
		subject:    d.Subject,
		body:       d.Body,
		threadID:   d.ThreadID,
		inReplyTo:  d.InReplyTo,
		references: d.References,
		date:       date,
	}, nil
}

func parseAddresses(field string, values []string) ([]*mail.Address, error) {
	addrs := make([]*mail.Address, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		addr, err := mail.ParseAddress(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s address %q: %w", field, v, err)
		}
		addrs = append(addrs, addr)
	}
	if field == "to" && len(addrs) == 0 {
		return nil, errors.New("at least one recipient is required")
	}
	return addrs, nil
}

// SplitAddresses splits a comma-separated recipient list.
func SplitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// HTMLBody derives the HTML rendering of a plain-text body. Line breaks
// become <br> and nothing else is translated.
func HTMLBody(plain string) string {
	return strings.ReplaceAll(plain, "\n", "<br>")
}

// ReplySubject normalizes subject for a reply: one leading "Re:" (any case)
// is removed and "Re: " is prepended.
func ReplySubject(subject string) string {
	s := strings.TrimSpace(subject)
	if len(s) >= 3 && strings.EqualFold(s[:3], "re:") {
		s = strings.TrimSpace(s[3:])
	}
	return "Re: " + s
}

// Accessors used for previews and results.
func (m *OutboundMessage) From() string { return formatAddresses([]*mail.Address{m.from}) }
func (m *OutboundMessage) To() string { return formatAddresses(m.to) }
func (m *OutboundMessage) Cc() string { return formatAddresses(m.cc) }
func (m *OutboundMessage) Bcc() string { return formatAddresses(m.bcc) }
func (m *OutboundMessage) Subject() string { return m.subject }
func (m *OutboundMessage) Body() string { return m.body }
func (m *OutboundMessage) HTMLBody() string { return HTMLBody(m.body) }
func (m *OutboundMessage) ThreadID() string { return m.threadID }
func (m *OutboundMessage) InReplyTo() string { return m.inReplyTo }
func (m *OutboundMessage) References() string { return m.references }

// Recipients returns every To, Cc and Bcc address.
func (m *OutboundMessage) Recipients() []string {
	out := make([]string, 0, len(m.to)+len(m.cc)+len(m.bcc))
	for _, list := range [][]*mail.Address{m.to, m.cc, m.bcc} {
		for _, a := range list {
			out = append(out, a.Address)
		}
	}
	return out
}

func formatAddresses(addrs []*mail.Address) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		if a.Name == "" {
			parts[i] = a.Address
		} else {
			parts[i] = a.Name + " <" + a.Address + ">"
		}
	}
	return strings.Join(parts, ", ")
}

// Header returns the top-level RFC 5322 header of the message.
func (m *OutboundMessage) Header() mail.Header {
	var h mail.Header
	h.SetDate(m.date)
	h.SetAddressList("From", []*mail.Address{m.from})
	h.SetAddressList("To", m.to)
	if len(m.cc) > 0 {
		h.SetAddressList("Cc", m.cc)
	}
	if len(m.bcc) > 0 {
		h.SetAddressList("Bcc", m.bcc)
	}
	h.SetSubject(m.subject)
	if m.inReplyTo != "" {
		h.Set("In-Reply-To", m.inReplyTo)
	}
	if m.references != "" {
		h.Set("References", m.references)
	}
	h.Set("MIME-Version", "1.0")
	return h
}

// Raw renders the message as multipart/alternative with a text/plain part
// followed by a text/html part.
func (m *OutboundMessage) Raw() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes the rendered message to w.
func (m *OutboundMessage) Render(w io.Writer) error {
	mw, err := mail.CreateInlineWriter(w, m.Header())
	if err != nil {
		return fmt.Errorf("failed to create message writer: %w", err)
	}

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain", m.body},
		{"text/html", m.HTMLBody()},
	}
	for _, p := range parts {
		var ph mail.InlineHeader
		ph.SetContentType(p.contentType, map[string]string{"charset": "utf-8"})
		ph.Set("Content-Transfer-Encoding", "quoted-printable")

		pw, err := mw.CreatePart(ph)
		if err != nil {
			return fmt.Errorf("failed to create %s part: %w", p.contentType, err)
		}
		if _, err := io.WriteString(pw, p.body); err != nil {
			pw.Close()
			return fmt.Errorf("failed to write %s part: %w", p.contentType, err)
		}
		if err := pw.Close(); err != nil {
			return fmt.Errorf("failed to close %s part: %w", p.contentType, err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}
	return nil
}

// GmailMessage returns the API representation: the rendered message encoded
// as base64url plus the thread id, when set.
func (m *OutboundMessage) GmailMessage() (*gmail.Message, error) {
	raw, err := m.Raw()
	if err != nil {
		return nil, err
	}
	return &gmail.Message{
		Raw:      base64.URLEncoding.EncodeToString(raw),
		ThreadId: m.threadID,
	}, nil
}

// ReplyContext is what a reply needs from the conversation it answers.
type ReplyContext struct {
	Subject    string
	InReplyTo  string
	References string
}

// ReplyContextFromThread extracts the subject and threading ids from the last
// message of thread.
func ReplyContextFromThread(thread *gmail.Thread) (ReplyContext, error) {
	if thread == nil || len(thread.Messages) == 0 {
		return ReplyContext{}, errors.New("thread has no messages")
	}
	last := thread.Messages[len(thread.Messages)-1]

	rc := ReplyContext{
		Subject:   HeaderValue(last, "Subject"),
		InReplyTo: HeaderValue(last, "Message-ID"),
	}
	if rc.Subject == "" {
		rc.Subject = HeaderValue(thread.Messages[0], "Subject")
	}

	refs := HeaderValue(last, "References")
	switch {
	case refs != "" && rc.InReplyTo != "":
		rc.References = refs + " " + rc.InReplyTo
	case rc.InReplyTo != "":
		rc.References = rc.InReplyTo
	default:
		rc.References = refs
	}
	return rc, nil
}
