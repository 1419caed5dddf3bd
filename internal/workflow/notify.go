package workflow

import (
	"context"
	"fmt"

	"github.com/livemoments/mailops/internal/config"
	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/gmail"
	"github.com/livemoments/mailops/internal/logging"
	"github.com/livemoments/mailops/internal/result"
)

// NotifyRequest describes an instant print booking the designer must follow up.
type NotifyRequest struct {
	Client    string
	POC       string
	POCEmail  string
	Date      string
	Time      string
	Venue     string
	EventType string
	Draft     bool
}

// DesignerNotification returns the subject and body of the designer email.
func DesignerNotification(d config.Designer, req NotifyRequest) (subject, body string) {
	subject = fmt.Sprintf("New Booking - %s - %s", req.Client, req.Date)
	body = fmt.Sprintf(`Hi %s,

We have a new instant print booking confirmed.

Please liaise directly with the client for the overlay design:

Client: %s
Email: %s
Event Date: %s
Start Time: %s
Venue: %s
Event Type: %s

Thank you!`, d.Name, req.POC, req.POCEmail, req.Date, req.Time, req.Venue, req.EventType)
	return subject, body
}

// NotifyDesigner emails the configured designer about a new booking.
func NotifyDesigner(ctx context.Context, env Env, mailer Mailer, req NotifyRequest) *result.Result {
	start := env.now()
	logger := logging.WithOperation(env.logger(), "notify_designer")

	designer := env.Config.Designer
	subject, body := DesignerNotification(designer, req)

	msg, err := gmail.NewMessage(gmail.Draft{
		From:    designer.From,
		To:      []string{designer.Email},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return result.Failure(err)
	}

	action, verb := "Send", confirm.VerbSend
	if req.Draft {
		action, verb = "Save as draft", confirm.VerbDraft
	}
	ok, err := env.confirm(confirm.Request{
		Preview: confirm.Mail{
			Title:   "DESIGNER NOTIFICATION PREVIEW",
			From:    msg.From(),
			To:      msg.To(),
			Subject: msg.Subject(),
			Body:    msg.Body(),
		}.String(),
		Question: action + " this notification?",
		Verb:     verb,
	})
	if err != nil {
		return result.Failure(err)
	}
	if !ok {
		logger.Info("cancelled by operator")
		return result.Cancelled(result.KindNotification)
	}

	r := deliver(ctx, mailer, msg, req.Draft)
	if r.Success {
		r.Kind = result.KindNotification
		r.Client = req.Client
		r.POC = req.POC
	}
	env.audit(ctx, "notify-designer", msg.Recipients(), r.MessageID+r.DraftID, r, start)
	logger.Info("notification finished", logging.Status(r.Outcome()))
	return r
}
