package workflow

import (
	"context"
	"fmt"

	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/gmail"
	"github.com/livemoments/mailops/internal/logging"
	"github.com/livemoments/mailops/internal/result"
)

// SendRequest describes an email or reply to send or save as a draft.
type SendRequest struct {
	// From overrides the sender. When empty the account's own address is
	// looked up.
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string

	// ReplyTo is the thread id to answer. The thread is fetched for its
	// threading headers, and for its subject unless ReplySubject is set.
	ReplyTo      string
	ReplySubject string

	Draft bool
}

// Send builds the message described by req, asks for confirmation and then
// either sends it or saves it as a draft.
func Send(ctx context.Context, env Env, mailer Mailer, req SendRequest) *result.Result {
	start := env.now()
	logger := logging.WithOperation(env.logger(), "send")

	sender := req.From
	if sender == "" {
		addr, err := mailer.Profile(ctx)
		if err != nil {
			return result.Failure(err)
		}
		sender = addr
		if sender == "" {
			sender = env.Config.Account
		}
	}

	draft := gmail.Draft{
		From:    sender,
		To:      req.To,
		Cc:      req.Cc,
		Bcc:     req.Bcc,
		Subject: req.Subject,
		Body:    req.Body,
	}
	title, noun := "EMAIL PREVIEW", "email"

	if req.ReplyTo != "" {
		thread, err := mailer.GetThread(ctx, req.ReplyTo)
		if err != nil {
			return result.Failure(err)
		}
		rc, err := gmail.ReplyContextFromThread(thread)
		if err != nil {
			return result.Failure(fmt.Errorf("cannot reply to thread %s: %w", req.ReplyTo, err))
		}
		subject := rc.Subject
		if req.ReplySubject != "" {
			subject = req.ReplySubject
		}
		draft.Subject = gmail.ReplySubject(subject)
		draft.ThreadID = req.ReplyTo
		draft.InReplyTo = rc.InReplyTo
		draft.References = rc.References
		title, noun = "REPLY PREVIEW", "reply"
	}

	msg, err := gmail.NewMessage(draft)
	if err != nil {
		return result.Failure(err)
	}

	action, verb, kind := "Send", confirm.VerbSend, result.KindSent
	if req.Draft {
		action, verb, kind = "Save as draft", confirm.VerbDraft, result.KindDraft
	}
	ok, err := env.confirm(confirm.Request{
		Preview: confirm.Mail{
			Title:   title,
			From:    msg.From(),
			To:      msg.To(),
			Cc:      msg.Cc(),
			Bcc:     msg.Bcc(),
			Subject: msg.Subject(),
			Body:    msg.Body(),
		}.String(),
		Question: fmt.Sprintf("%s this %s?", action, noun),
		Verb:     verb,
	})
	if err != nil {
		return result.Failure(err)
	}
	if !ok {
		logger.Info("cancelled by operator")
		return result.Cancelled(kind)
	}

	r := deliver(ctx, mailer, msg, req.Draft)
	if r.Success {
		r.Kind = kind
	}
	env.audit(ctx, "send", msg.Recipients(), r.MessageID+r.DraftID, r, start)
	logger.Info("send finished", logging.Status(r.Outcome()), logging.Duration(env.now().Sub(start)))
	return r
}

// deliver performs the single remote call for an outbound message.
func deliver(ctx context.Context, mailer Mailer, msg *gmail.OutboundMessage, asDraft bool) *result.Result {
	gm, err := msg.GmailMessage()
	if err != nil {
		return result.Failure(err)
	}

	r := &result.Result{
		Success: true,
		Sender:  msg.From(),
		To:      msg.To(),
		Subject: msg.Subject(),
	}

	if asDraft {
		saved, err := mailer.CreateDraft(ctx, gm)
		if err != nil {
			return result.Failure(err)
		}
		r.Kind = result.KindDraft
		r.DraftID = saved.Id
		r.ThreadID = msg.ThreadID()
		r.IsDraft = true
		return r
	}

	sent, err := mailer.Send(ctx, gm)
	if err != nil {
		return result.Failure(err)
	}
	r.Kind = result.KindSent
	r.MessageID = sent.Id
	r.ThreadID = sent.ThreadId
	return r
}
