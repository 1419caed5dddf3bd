package workflow

import (
	"context"
	"fmt"

	"github.com/livemoments/mailops/internal/capture"
	"github.com/livemoments/mailops/internal/logging"
	"github.com/livemoments/mailops/internal/result"
)

// CaptureRequest describes a mail search to record.
type CaptureRequest struct {
	Query      string
	MaxResults int64
	// Save merges the captured emails into the cache at CachePath.
	Save      bool
	CachePath string
	// MboxPath, when set, receives a copy of every captured email.
	MboxPath string
}

// Capture fetches the messages matching req.Query and optionally stores them.
// Finding nothing is a success with no emails.
func Capture(ctx context.Context, env Env, searcher Searcher, req CaptureRequest) *result.Result {
	logger := logging.WithOperation(env.logger(), "capture")

	limit := req.MaxResults
	if limit <= 0 {
		limit = capture.DefaultMaxResults
	}

	stubs, err := searcher.ListMessages(ctx, req.Query, limit)
	if err != nil {
		return result.Failure(err)
	}

	r := &result.Result{Kind: result.KindCapture, Success: true, Query: req.Query}
	if len(stubs) == 0 {
		logger.Info("no emails matched")
		return r
	}

	emails := make([]capture.Email, 0, len(stubs))
	for _, stub := range stubs {
		msg, err := searcher.GetMessage(ctx, stub.Id)
		if err != nil {
			return result.Failure(err)
		}
		if msg.ThreadId == "" {
			msg.ThreadId = stub.ThreadId
		}
		emails = append(emails, capture.FromMessage(msg, req.Query, env.now()))
	}
	r.Emails = emails

	if req.Save {
		if _, err := capture.Update(req.CachePath, emails); err != nil {
			return result.Failure(fmt.Errorf("failed to save cache: %w", err))
		}
		r.CachePath = req.CachePath
		logger.Info("cache updated", logging.Path(req.CachePath))
	}
	if req.MboxPath != "" {
		if err := capture.AppendMbox(req.MboxPath, emails); err != nil {
			return result.Failure(err)
		}
		r.MboxPath = req.MboxPath
	}

	return r
}
