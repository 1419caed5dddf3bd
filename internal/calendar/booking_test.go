package calendar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livemoments/mailops/internal/config"
)

func testBooking() Booking {
	return Booking{
		Company:  "Acme",
		POC:      "Jane",
		Type:     TypeEvent,
		Date:     "2026-05-21",
		Start:    "09:00",
		End:      "20:30",
		Location: "Conrad Singapore",
		EmailID:  "abc123",
		Status:   StatusTBC,
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"TBC", StatusTBC, false},
		{"tbc", StatusTBC, false},
		{"Confirmed", StatusConfirmed, false},
		{" CONFIRMED ", StatusConfirmed, false},
		{"PENDING", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				var ue *UsageError
				require.True(t, errors.As(err, &ue))
				assert.Equal(t, "status", ue.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEventType(t *testing.T) {
	tests := []struct {
		in      string
		want    EventType
		wantErr bool
	}{
		{"EVENT", TypeEvent, false},
		{"live", TypeLive, false},
		{"WEDDING", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEventType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoute(t *testing.T) {
	cfg := config.Default().Calendar

	tbc := Route(StatusTBC, cfg)
	assert.Equal(t, cfg.AdminID, tbc.CalendarID)
	assert.Equal(t, "3", tbc.ColorID)
	assert.Equal(t, "TBC - ", tbc.TitlePrefix)

	assert.Equal(t, "Administration (Purple)", tbc.Label)

	confirmed := Route(StatusConfirmed, cfg)
	assert.Equal(t, cfg.MainID, confirmed.CalendarID)
	assert.Empty(t, confirmed.ColorID)
	assert.Empty(t, confirmed.TitlePrefix)
	assert.Equal(t, "Main", confirmed.Label)
}

func TestRoute_NonConfirmedIsProvisional(t *testing.T) {
	cfg := config.Default().Calendar

	for _, status := range []Status{"tbc", "", "PENDING", "confirmed"} {
		t.Run(string(status), func(t *testing.T) {
			got := Route(status, cfg)
			assert.Equal(t, cfg.AdminID, got.CalendarID)
			assert.Equal(t, cfg.ProvisionalColor, got.ColorID)
			assert.Equal(t, cfg.ProvisionalPrefix, got.TitlePrefix)
		})
	}
}

func TestBuildEvent_ProvisionalRouting(t *testing.T) {
	cfg := config.Default().Calendar

	event, routing, err := BuildEvent(testBooking(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "jml0dbb0k0pq0qfdlhdo89oql0@group.calendar.google.com", routing.CalendarID)
	assert.Equal(t, "TBC - Acme - Jane (EVENT)", event.Summary)
	assert.Equal(t, "3", event.ColorId)
	assert.Equal(t, "Conrad Singapore", event.Location)
	assert.Equal(t, "Email ID: abc123\n\nStatus: TBC\n\nPOC: Jane", event.Description)

	assert.Equal(t, "2026-05-21T09:00:00", event.Start.DateTime)
	assert.Equal(t, "Asia/Singapore", event.Start.TimeZone)
	assert.Equal(t, "2026-05-21T20:30:00", event.End.DateTime)
	assert.Equal(t, "Asia/Singapore", event.End.TimeZone)

	require.NotNil(t, event.Reminders)
	assert.False(t, event.Reminders.UseDefault)
	assert.Contains(t, event.Reminders.ForceSendFields, "UseDefault")
	require.Len(t, event.Reminders.Overrides, 2)
	assert.Equal(t, "email", event.Reminders.Overrides[0].Method)
	assert.Equal(t, int64(10080), event.Reminders.Overrides[0].Minutes)
	assert.Equal(t, int64(4320), event.Reminders.Overrides[1].Minutes)
}

func TestBuildEvent_Confirmed(t *testing.T) {
	b := testBooking()
	b.Status = "confirmed"
	b.Type = "live"
	b.Description = "Wedding dinner"

	event, routing, err := BuildEvent(b, config.Default().Calendar)
	require.NoError(t, err)

	assert.Equal(t, "livemomentssg@gmail.com", routing.CalendarID)
	assert.Equal(t, "Acme - Jane (LIVE)", event.Summary)
	assert.Empty(t, event.ColorId)
	assert.Equal(t, "Email ID: abc123\n\nWedding dinner\n\nStatus: CONFIRMED\n\nPOC: Jane", event.Description)
}

func TestBuildEvent_WallTimeIsExact(t *testing.T) {
	for _, tz := range []string{"Asia/Singapore", "America/Los_Angeles", "UTC"} {
		t.Run(tz, func(t *testing.T) {
			cfg := config.Default().Calendar
			cfg.TimeZone = tz
			b := testBooking()
			b.Date = "2026-03-08"
			b.Start = "02:30"
			b.End = "23:59"

			event, _, err := BuildEvent(b, cfg)
			require.NoError(t, err)
			assert.Equal(t, "2026-03-08T02:30:00", event.Start.DateTime)
			assert.Equal(t, "2026-03-08T23:59:00", event.End.DateTime)
			assert.Equal(t, tz, event.Start.TimeZone)
		})
	}
}

func TestBuildEvent_UsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Booking)
		field  string
	}{
		{"bad date", func(b *Booking) { b.Date = "21/05/2026" }, "date"},
		{"bad start", func(b *Booking) { b.Start = "9am" }, "start"},
		{"bad end", func(b *Booking) { b.End = "25:00" }, "end"},
		{"end before start", func(b *Booking) { b.Start = "18:00"; b.End = "09:00" }, "end"},
		{"bad status", func(b *Booking) { b.Status = "MAYBE" }, "status"},
		{"bad type", func(b *Booking) { b.Type = "PARTY" }, "type"},
		{"missing company", func(b *Booking) { b.Company = "" }, "company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBooking()
			tt.mutate(&b)

			_, _, err := BuildEvent(b, config.Default().Calendar)

			var ue *UsageError
			require.True(t, errors.As(err, &ue), "got %v", err)
			assert.Equal(t, tt.field, ue.Field)
		})
	}
}

func TestBuildEvent_SameStartAndEnd(t *testing.T) {
	b := testBooking()
	b.End = b.Start

	_, _, err := BuildEvent(b, config.Default().Calendar)
	assert.NoError(t, err)
}
