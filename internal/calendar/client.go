package calendar

import (
	"context"
	"fmt"
	"net/http"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/livemoments/mailops/internal/instrumentation"
)

// Client wraps the Google Calendar service
type Client struct {
	svc     *calendar.Service
	account string
	metrics *instrumentation.Metrics
}

// NewClient creates a Calendar client that authenticates through httpClient.
func NewClient(ctx context.Context, httpClient *http.Client, account string, metrics *instrumentation.Metrics, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
		metrics: metrics,
	}, nil
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// InsertEvent creates event on the calendar calendarID.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, event *calendar.Event) (_ EventSummary, err error) {
	ctx, done := c.metrics.TrackGoogleAPI(ctx, instrumentation.ServiceCalendar, "insert_event")
	defer func() { done(err) }()

	created, err := c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return EventSummary{}, fmt.Errorf("failed to create event: %w", err)
	}

	return toEventSummary(calendarID, created), nil
}
