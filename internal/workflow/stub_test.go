package workflow

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	gomail "github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/require"
	calendarapi "google.golang.org/api/calendar/v3"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/livemoments/mailops/internal/calendar"
	"github.com/livemoments/mailops/internal/config"
	"github.com/livemoments/mailops/internal/confirm"
)

type stubMailer struct {
	profile    string
	profileErr error
	thread     *gmailapi.Thread
	sendErr    error

	profileCalls int
	threadCalls  int
	sendCalls    int
	draftCalls   int
	sent         *gmailapi.Message
}

func (s *stubMailer) Profile(context.Context) (string, error) {
	s.profileCalls++
	return s.profile, s.profileErr
}

func (s *stubMailer) Send(_ context.Context, msg *gmailapi.Message) (*gmailapi.Message, error) {
	s.sendCalls++
	s.sent = msg
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &gmailapi.Message{Id: "msg-1", ThreadId: "thread-1"}, nil
}

func (s *stubMailer) CreateDraft(_ context.Context, msg *gmailapi.Message) (*gmailapi.Draft, error) {
	s.draftCalls++
	s.sent = msg
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &gmailapi.Draft{Id: "draft-1", Message: &gmailapi.Message{Id: "msg-2"}}, nil
}

func (s *stubMailer) GetThread(_ context.Context, id string) (*gmailapi.Thread, error) {
	s.threadCalls++
	if s.thread == nil {
		return nil, errors.New("thread " + id + " not found")
	}
	return s.thread, nil
}

type stubInserter struct {
	err        error
	calls      int
	calendarID string
	event      *calendarapi.Event
}

func (s *stubInserter) InsertEvent(_ context.Context, calendarID string, event *calendarapi.Event) (calendar.EventSummary, error) {
	s.calls++
	s.calendarID = calendarID
	s.event = event
	if s.err != nil {
		return calendar.EventSummary{}, s.err
	}
	return calendar.EventSummary{ID: "evt-1", CalendarID: calendarID, HTMLLink: "https://calendar.example/evt-1"}, nil
}

type stubSearcher struct {
	stubs    []*gmailapi.Message
	messages map[string]*gmailapi.Message
	listErr  error
	query    string
	max      int64
}

func (s *stubSearcher) ListMessages(_ context.Context, q string, maxResults int64) ([]*gmailapi.Message, error) {
	s.query = q
	s.max = maxResults
	return s.stubs, s.listErr
}

func (s *stubSearcher) GetMessage(_ context.Context, id string) (*gmailapi.Message, error) {
	msg, ok := s.messages[id]
	if !ok {
		return nil, errors.New("message " + id + " not found")
	}
	return msg, nil
}

// answer is a Confirmer that records the request and returns a fixed answer.
type answer struct {
	ok  bool
	err error
	req confirm.Request
	n   int
}

func (a *answer) Confirm(req confirm.Request) (bool, error) {
	a.n++
	a.req = req
	return a.ok, a.err
}

func testEnv(c confirm.Confirmer) Env {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return Env{
		Config:    config.Default(),
		Confirmer: c,
		Now:       func() time.Time { return fixed },
	}
}

func header(name, value string) *gmailapi.MessagePartHeader {
	return &gmailapi.MessagePartHeader{Name: name, Value: value}
}

// decodeRaw parses the raw RFC 5322 message handed to the Gmail API.
func decodeRaw(t *testing.T, msg *gmailapi.Message) gomail.Header {
	t.Helper()
	raw, err := base64.URLEncoding.DecodeString(msg.Raw)
	require.NoError(t, err)
	mr, err := gomail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)
	return mr.Header
}
