package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livemoments/mailops/internal/config"
	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/result"
)

var booking = NotifyRequest{
	Client:    "Acme",
	POC:       "Jane",
	POCEmail:  "jane@acme.test",
	Date:      "2026-04-01",
	Time:      "18:00",
	Venue:     "Marina Bay",
	EventType: "Wedding",
}

func TestDesignerNotification(t *testing.T) {
	subject, body := DesignerNotification(config.Designer{Name: "Ting Ting"}, booking)

	assert.Equal(t, "New Booking - Acme - 2026-04-01", subject)
	assert.Equal(t, `Hi Ting Ting,

We have a new instant print booking confirmed.

Please liaise directly with the client for the overlay design:

Client: Jane
Email: jane@acme.test
Event Date: 2026-04-01
Start Time: 18:00
Venue: Marina Bay
Event Type: Wedding

Thank you!`, body)
}

func TestNotifyDesigner(t *testing.T) {
	tests := []struct {
		name     string
		draft    bool
		question string
		kind     result.Kind
		sends    int
		drafts   int
	}{
		{"send", false, "Send this notification?", result.KindNotification, 1, 0},
		{"draft", true, "Save as draft this notification?", result.KindNotification, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &stubMailer{}
			gate := &answer{ok: true}
			env := testEnv(gate)

			req := booking
			req.Draft = tt.draft
			r := NotifyDesigner(context.Background(), env, mailer, req)

			require.True(t, r.Success, r.Error)
			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, "Acme", r.Client)
			assert.Equal(t, "Jane", r.POC)
			assert.Equal(t, env.Config.Designer.Email, r.To)
			assert.Equal(t, env.Config.Designer.From, r.Sender)
			assert.Equal(t, tt.draft, r.IsDraft)
			assert.Equal(t, tt.sends, mailer.sendCalls)
			assert.Equal(t, tt.drafts, mailer.draftCalls)
			assert.Equal(t, 0, mailer.profileCalls)
			assert.Equal(t, tt.question, gate.req.Question)
			assert.Contains(t, gate.req.Preview, "DESIGNER NOTIFICATION PREVIEW")
		})
	}
}

func TestNotifyDesigner_Cancelled(t *testing.T) {
	mailer := &stubMailer{}

	r := NotifyDesigner(context.Background(), testEnv(&answer{ok: false}), mailer, booking)

	assert.True(t, r.PreviewOnly)
	assert.Equal(t, result.KindNotification, r.Action)
	assert.Equal(t, 0, mailer.sendCalls)
	assert.Equal(t, 0, mailer.draftCalls)
}

func TestNotifyDesigner_BadDesignerAddress(t *testing.T) {
	mailer := &stubMailer{}
	env := testEnv(confirm.Always{})
	env.Config.Designer.Email = "not an address"

	r := NotifyDesigner(context.Background(), env, mailer, booking)

	assert.False(t, r.Success)
	assert.Equal(t, result.KindFailure, r.Kind)
	assert.Equal(t, 0, mailer.sendCalls)
}
