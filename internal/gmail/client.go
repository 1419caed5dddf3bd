package gmail

import (
	"context"
	"fmt"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/livemoments/mailops/internal/instrumentation"
)

// me is the Gmail user id that refers to the authenticated account.
const me = "me"

// Client wraps the Gmail Users service for a single account.
type Client struct {
	svc     *gmail.UsersService
	account string
	metrics *instrumentation.Metrics
}

// NewClient creates a Gmail client that authenticates through httpClient.
// Additional options are appended after the HTTP client; tests use them to
// point the client at a local endpoint.
func NewClient(ctx context.Context, httpClient *http.Client, account string, metrics *instrumentation.Metrics, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:     svc.Users,
		account: account,
		metrics: metrics,
	}, nil
}

// Account returns the account this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// Profile returns the email address of the authenticated account.
func (c *Client) Profile(ctx context.Context) (_ string, err error) {
	ctx, done := c.metrics.TrackGoogleAPI(ctx, instrumentation.ServiceGmail, "profile")
	defer func() { done(err) }()

	profile, err := c.svc.GetProfile(me).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}
	return profile.EmailAddress, nil
}

// Send sends a raw message and returns the stored copy with its id and thread id.
func (c *Client) Send(ctx context.Context, msg *gmail.Message) (_ *gmail.Message, err error) {
	ctx, done := c.metrics.TrackGoogleAPI(ctx, instrumentation.ServiceGmail, "send")
	defer func() { done(err) }()

	sent, err := c.svc.Messages.Send(me, msg).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	return sent, nil
}

// CreateDraft stores msg as a draft.
func (c *Client) CreateDraft(ctx context.Context, msg *gmail.Message) (_ *gmail.Draft, err error) {
	ctx, done := c.metrics.TrackGoogleAPI(ctx, instrumentation.ServiceGmail, "create_draft")
	defer func() { done(err) }()

	draft, err := c.svc.Drafts.Create(me, &gmail.Draft{Message: msg}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

// GetThread retrieves a thread with the headers needed to reply to it.
func (c *Client) GetThread(ctx context.Context, threadID string) (_ *gmail.Thread, err error) {
	ctx, done := c.metrics.TrackGoogleAPI(ctx, instrumentation.ServiceGmail, "get_thread")
	defer func() { done(err) }()

	thread, err := c.svc.Threads.Get(me, threadID).
		Format("metadata").
		MetadataHeaders("Subject", "Message-ID", "References", "From").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get thread %s: %w", threadID, err)
	}
	return thread, nil
}

// ListMessages returns up to maxResults message stubs (id and thread id)
// matching the Gmail search query q.
func (c *Client) ListMessages(ctx context.Context, q string, maxResults int64) (_ []*gmail.Message, err error) {
	ctx, done := c.metrics.TrackGoogleAPI(ctx, instrumentation.ServiceGmail, "list")
	defer func() { done(err) }()

	res, err := c.svc.Messages.List(me).Q(q).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return res.Messages, nil
}

// GetMessage retrieves a message with its full payload.
func (c *Client) GetMessage(ctx context.Context, messageID string) (_ *gmail.Message, err error) {
	ctx, done := c.metrics.TrackGoogleAPI(ctx, instrumentation.ServiceGmail, "get")
	defer func() { done(err) }()

	msg, err := c.svc.Messages.Get(me, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}
