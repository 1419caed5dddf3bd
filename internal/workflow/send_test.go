package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/result"
)

func TestSend_Confirmed(t *testing.T) {
	mailer := &stubMailer{profile: "ops@livemoments.test"}
	gate := &answer{ok: true}

	r := Send(context.Background(), testEnv(gate), mailer, SendRequest{
		To:      []string{"client@client.test"},
		Subject: "Quotation",
		Body:    "Hello\nThanks",
	})

	require.True(t, r.Success, r.Error)
	assert.Equal(t, result.KindSent, r.Kind)
	assert.Equal(t, "msg-1", r.MessageID)
	assert.Equal(t, "thread-1", r.ThreadID)
	assert.Equal(t, "ops@livemoments.test", r.Sender)
	assert.Equal(t, 1, mailer.profileCalls)
	assert.Equal(t, 1, mailer.sendCalls)
	assert.Equal(t, 0, mailer.draftCalls)

	assert.Equal(t, "Send this email?", gate.req.Question)
	assert.Equal(t, confirm.VerbSend, gate.req.Verb)
	assert.Contains(t, gate.req.Preview, "EMAIL PREVIEW")
	assert.Contains(t, gate.req.Preview, "To: client@client.test")

	h := decodeRaw(t, mailer.sent)
	subject, err := h.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Quotation", subject)
}

func TestSend_CancelledMakesNoRemoteCall(t *testing.T) {
	tests := []struct {
		name  string
		draft bool
		kind  result.Kind
	}{
		{"send", false, result.KindSent},
		{"draft", true, result.KindDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &stubMailer{}
			gate := &answer{ok: false}

			r := Send(context.Background(), testEnv(gate), mailer, SendRequest{
				From:    "ops@livemoments.test",
				To:      []string{"client@client.test"},
				Subject: "Quotation",
				Body:    "Hello",
				Draft:   tt.draft,
			})

			assert.False(t, r.Success)
			assert.True(t, r.PreviewOnly)
			assert.Equal(t, result.CancelledMessage, r.Error)
			assert.Equal(t, tt.kind, r.Action)
			assert.Equal(t, 1, r.ExitCode())
			assert.Equal(t, 0, mailer.sendCalls)
			assert.Equal(t, 0, mailer.draftCalls)
			assert.Equal(t, 0, mailer.profileCalls)
		})
	}
}

func TestSend_Draft(t *testing.T) {
	mailer := &stubMailer{}
	gate := &answer{ok: true}

	r := Send(context.Background(), testEnv(gate), mailer, SendRequest{
		From:    "ops@livemoments.test",
		To:      []string{"client@client.test"},
		Subject: "Quotation",
		Body:    "Hello",
		Draft:   true,
	})

	require.True(t, r.Success, r.Error)
	assert.Equal(t, result.KindDraft, r.Kind)
	assert.Equal(t, "draft-1", r.DraftID)
	assert.True(t, r.IsDraft)
	assert.Equal(t, 0, mailer.sendCalls)
	assert.Equal(t, 1, mailer.draftCalls)
	assert.Equal(t, "Save as draft this email?", gate.req.Question)
	assert.Equal(t, confirm.VerbDraft, gate.req.Verb)
}

func TestSend_ProfileFallsBackToAccount(t *testing.T) {
	mailer := &stubMailer{}
	env := testEnv(confirm.Always{})
	env.Config.Account = "fallback@livemoments.test"

	r := Send(context.Background(), env, mailer, SendRequest{
		To:      []string{"client@client.test"},
		Subject: "Hi",
		Body:    "Hello",
	})

	require.True(t, r.Success, r.Error)
	assert.Equal(t, "fallback@livemoments.test", r.Sender)
}

func TestSend_Reply(t *testing.T) {
	mailer := &stubMailer{thread: &gmailapi.Thread{Messages: []*gmailapi.Message{
		{Payload: &gmailapi.MessagePart{Headers: []*gmailapi.MessagePartHeader{
			header("Subject", "Wedding booking"),
			header("Message-ID", "<first@client.test>"),
		}}},
		{Payload: &gmailapi.MessagePart{Headers: []*gmailapi.MessagePartHeader{
			header("Subject", "Re: Wedding booking"),
			header("Message-ID", "<second@client.test>"),
			header("References", "<first@client.test>"),
		}}},
	}}}
	gate := &answer{ok: true}

	r := Send(context.Background(), testEnv(gate), mailer, SendRequest{
		From:    "ops@livemoments.test",
		To:      []string{"client@client.test"},
		Body:    "Confirmed",
		ReplyTo: "thread-9",
	})

	require.True(t, r.Success, r.Error)
	assert.Equal(t, 1, mailer.threadCalls)
	assert.Equal(t, "Re: Wedding booking", r.Subject)
	assert.Equal(t, "Send this reply?", gate.req.Question)
	assert.Contains(t, gate.req.Preview, "REPLY PREVIEW")

	require.NotNil(t, mailer.sent)
	assert.Equal(t, "thread-9", mailer.sent.ThreadId)
	h := decodeRaw(t, mailer.sent)
	assert.Equal(t, "<second@client.test>", h.Get("In-Reply-To"))
	assert.Equal(t, "<first@client.test> <second@client.test>", h.Get("References"))
}

func TestSend_ReplySubjectOverride(t *testing.T) {
	mailer := &stubMailer{thread: &gmailapi.Thread{Messages: []*gmailapi.Message{
		{Payload: &gmailapi.MessagePart{Headers: []*gmailapi.MessagePartHeader{
			header("Subject", "Original"),
		}}},
	}}}

	r := Send(context.Background(), testEnv(confirm.Always{}), mailer, SendRequest{
		From:         "ops@livemoments.test",
		To:           []string{"client@client.test"},
		Body:         "Body",
		ReplyTo:      "thread-9",
		ReplySubject: "New topic",
	})

	require.True(t, r.Success, r.Error)
	assert.Equal(t, "Re: New topic", r.Subject)
}

func TestSend_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mailer  *stubMailer
		req     SendRequest
		wantErr string
		sends   int
	}{
		{
			name:    "profile lookup fails",
			mailer:  &stubMailer{profileErr: errors.New("profile unavailable")},
			req:     SendRequest{To: []string{"a@b.test"}, Subject: "s", Body: "b"},
			wantErr: "profile unavailable",
		},
		{
			name:    "thread lookup fails",
			mailer:  &stubMailer{},
			req:     SendRequest{From: "ops@x.test", To: []string{"a@b.test"}, Body: "b", ReplyTo: "missing"},
			wantErr: "thread missing not found",
		},
		{
			name:    "no recipients",
			mailer:  &stubMailer{},
			req:     SendRequest{From: "ops@x.test", Subject: "s", Body: "b"},
			wantErr: "recipient",
		},
		{
			name:    "remote send rejected",
			mailer:  &stubMailer{sendErr: errors.New("googleapi: Error 403: insufficient scope")},
			req:     SendRequest{From: "ops@x.test", To: []string{"a@b.test"}, Subject: "s", Body: "b"},
			wantErr: "insufficient scope",
			sends:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Send(context.Background(), testEnv(confirm.Always{}), tt.mailer, tt.req)

			assert.False(t, r.Success)
			assert.False(t, r.PreviewOnly)
			assert.Equal(t, result.KindFailure, r.Kind)
			assert.Contains(t, r.Error, tt.wantErr)
			assert.Equal(t, tt.sends, tt.mailer.sendCalls)
		})
	}
}

func TestSend_ConfirmError(t *testing.T) {
	mailer := &stubMailer{}
	gate := &answer{err: errors.New("failed to read answer: broken pipe")}

	r := Send(context.Background(), testEnv(gate), mailer, SendRequest{
		From: "ops@x.test", To: []string{"a@b.test"}, Subject: "s", Body: "b",
	})

	assert.False(t, r.Success)
	assert.Contains(t, r.Error, "broken pipe")
	assert.Equal(t, 0, mailer.sendCalls)
}
