package capture

import (
	"fmt"
	"io"
	"net/mail"
	"os"
	"time"

	"github.com/emersion/go-mbox"
	gomail "github.com/emersion/go-message/mail"
)

// AppendMbox appends emails to the mbox file at path, creating it if needed.
// Each email becomes a text/plain message carrying its original headers.
func AppendMbox(path string, emails []Email) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open mbox %s: %w", path, err)
	}
	defer f.Close()

	w := mbox.NewWriter(f)
	for _, e := range emails {
		mw, err := w.CreateMessage(envelopeSender(e.From), emailTime(e))
		if err != nil {
			return fmt.Errorf("failed to start mbox message %s: %w", e.MessageID, err)
		}
		if err := writeMessage(mw, e); err != nil {
			return fmt.Errorf("failed to write mbox message %s: %w", e.MessageID, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish mbox %s: %w", path, err)
	}
	return f.Close()
}

func writeMessage(w io.Writer, e Email) error {
	var h gomail.Header
	h.SetDate(emailTime(e))
	// Address headers are copied verbatim since they are already encoded.
	for _, f := range []struct{ key, value string }{
		{"From", e.From},
		{"To", e.To},
		{"Cc", e.Cc},
		{"Subject", e.Subject},
		{"Message-Id", e.RFCMessageID},
		{"X-Gmail-Message-Id", e.MessageID},
		{"X-Gmail-Thread-Id", e.ThreadID},
	} {
		if f.value != "" {
			h.Set(f.key, f.value)
		}
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	bw, err := gomail.CreateSingleInlineWriter(w, h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(bw, e.Body); err != nil {
		bw.Close()
		return err
	}
	return bw.Close()
}

func envelopeSender(from string) string {
	if addr, err := mail.ParseAddress(from); err == nil {
		return addr.Address
	}
	return "MAILER-DAEMON"
}

func emailTime(e Email) time.Time {
	if t, err := mail.ParseDate(e.Date); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.000000", e.CapturedAt, time.Local); err == nil {
		return t
	}
	return time.Now()
}
