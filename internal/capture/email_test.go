package capture

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"
)

func TestFromMessage(t *testing.T) {
	long := strings.Repeat("é", BodyLimit+10)
	msg := &gmailapi.Message{
		Id:       "18c2f0a1b2c3d4e5",
		ThreadId: "18c2f0a1b2c3d000",
		Snippet:  "Hi, could you quote",
		Payload: &gmailapi.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "Jean <jean@example.com>"},
				{Name: "To", Value: "livemomentssg@gmail.com"},
				{Name: "Subject", Value: "Quotation"},
				{Name: "Date", Value: "Tue, 3 Mar 2026 10:00:00 +0800"},
				{Name: "Message-Id", Value: "<abc@mail.example.com>"},
			},
			Body: &gmailapi.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte(long))},
		},
	}
	at := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)

	e := FromMessage(msg, "from:jean", at)

	assert.Equal(t, "2026-03-03T12:00:00.000000", e.CapturedAt)
	assert.Equal(t, "18c2f0a1b2c3d4e5", e.MessageID)
	assert.Equal(t, "Jean <jean@example.com>", e.From)
	assert.Equal(t, "", e.Cc)
	assert.Equal(t, "Quotation", e.Subject)
	assert.Equal(t, "from:jean", e.SearchQuery)
	assert.Equal(t, "<abc@mail.example.com>", e.RFCMessageID)
	assert.Equal(t, BodyLimit, len([]rune(e.Body)))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
		{"hello", 0, ""},
		{"", 3, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), "Truncate(%q, %d)", tt.in, tt.n)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "thread1_18c2f0a1", Key(Email{ThreadID: "thread1", MessageID: "18c2f0a1b2c3d4e5"}))
	assert.Equal(t, "thread1_abc", Key(Email{ThreadID: "thread1", MessageID: "abc"}))
}
