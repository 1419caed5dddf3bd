package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livemoments/mailops/internal/calendar"
	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/result"
)

func provisionalBooking() calendar.Booking {
	return calendar.Booking{
		Company:  "Acme",
		POC:      "Jane",
		Type:     calendar.TypeEvent,
		Date:     "2026-04-01",
		Start:    "18:00",
		End:      "22:30",
		Location: "Marina Bay",
		EmailID:  "18c2f0a1",
		Status:   calendar.StatusTBC,
	}
}

func TestAddEvent_Provisional(t *testing.T) {
	inserter := &stubInserter{}
	gate := &answer{ok: true}
	env := testEnv(gate)

	r := AddEvent(context.Background(), env, inserter, provisionalBooking())

	require.True(t, r.Success, r.Error)
	assert.Equal(t, result.KindEvent, r.Kind)
	assert.Equal(t, 1, inserter.calls)
	assert.Equal(t, env.Config.Calendar.AdminID, inserter.calendarID)
	assert.Equal(t, env.Config.Calendar.AdminID, r.CalendarID)
	assert.Equal(t, "Administration (Purple)", r.CalendarLabel)
	assert.Equal(t, "TBC - Acme - Jane (EVENT)", r.Title)
	assert.Equal(t, "evt-1", r.EventID)
	assert.Equal(t, "https://calendar.example/evt-1", r.HTMLLink)
	assert.Equal(t, "TBC", r.Status)

	require.NotNil(t, inserter.event)
	assert.Equal(t, "2026-04-01T18:00:00", inserter.event.Start.DateTime)
	assert.Equal(t, "2026-04-01T22:30:00", inserter.event.End.DateTime)

	assert.Equal(t, "Create this event?", gate.req.Question)
	assert.Equal(t, confirm.VerbCreate, gate.req.Verb)
	assert.Contains(t, gate.req.Preview, "2026-04-01 18:00-22:30 (Asia/Singapore)")
	assert.Contains(t, gate.req.Preview, "email 7d")
}

func TestAddEvent_ConfirmedGoesToMain(t *testing.T) {
	inserter := &stubInserter{}
	env := testEnv(confirm.Always{})
	b := provisionalBooking()
	b.Status = "confirmed"

	r := AddEvent(context.Background(), env, inserter, b)

	require.True(t, r.Success, r.Error)
	assert.Equal(t, env.Config.Calendar.MainID, inserter.calendarID)
	assert.Equal(t, "Acme - Jane (EVENT)", r.Title)
	assert.Equal(t, "CONFIRMED", r.Status)
	assert.Empty(t, inserter.event.ColorId)
}

func TestAddEvent_Cancelled(t *testing.T) {
	inserter := &stubInserter{}

	r := AddEvent(context.Background(), testEnv(&answer{ok: false}), inserter, provisionalBooking())

	assert.True(t, r.PreviewOnly)
	assert.Equal(t, result.KindEvent, r.Action)
	assert.Equal(t, 0, inserter.calls)
}

func TestAddEvent_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*calendar.Booking)
		err      error
		wantErr  string
		inserts  int
		prompted bool
	}{
		{
			name:    "end before start",
			mutate:  func(b *calendar.Booking) { b.End = "17:00" },
			wantErr: "end",
		},
		{
			name:    "unknown status",
			mutate:  func(b *calendar.Booking) { b.Status = "maybe" },
			wantErr: "status",
		},
		{
			name:     "remote insert rejected",
			mutate:   func(*calendar.Booking) {},
			err:      errors.New("googleapi: Error 404: Not Found"),
			wantErr:  "Not Found",
			inserts:  1,
			prompted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserter := &stubInserter{err: tt.err}
			gate := &answer{ok: true}
			b := provisionalBooking()
			tt.mutate(&b)

			r := AddEvent(context.Background(), testEnv(gate), inserter, b)

			assert.False(t, r.Success)
			assert.Equal(t, result.KindFailure, r.Kind)
			assert.Contains(t, r.Error, tt.wantErr)
			assert.Equal(t, tt.inserts, inserter.calls)
			assert.Equal(t, tt.prompted, gate.n > 0)
		})
	}
}
