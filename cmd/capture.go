package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/livemoments/mailops/internal/capture"
	"github.com/livemoments/mailops/internal/result"
	"github.com/livemoments/mailops/internal/workflow"
)

func newCaptureCmd() *cobra.Command {
	var (
		req captureFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Fetch emails matching a Gmail search",
		Long: `Fetch the emails matching a Gmail search query and print them.

With --save the emails are merged into the JSON cache, keyed by thread and
message so repeated captures do not duplicate entries. With --mbox they are
also appended to an mbox file.`,
		Example: `  mailops capture --query "from:client@example.com newer_than:7d"
  mailops capture --query "subject:booking" --max 10 --save --mbox bookings.mbox`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "capture", out, func(ctx context.Context, a *app) *result.Result {
				searcher, err := a.gmailClient(ctx)
				if err != nil {
					return result.Failure(err)
				}
				cachePath := req.CachePath
				if cachePath == "" {
					cachePath = a.cfg.CachePath
				}
				return workflow.Capture(ctx, a.env(nil), searcher, workflow.CaptureRequest{
					Query:      req.Query,
					MaxResults: req.Max,
					Save:       req.Save,
					CachePath:  cachePath,
					MboxPath:   req.Mbox,
				})
			})
		},
	}

	cmd.Flags().StringVar(&req.Query, "query", "", "Gmail search query (required)")
	cmd.Flags().Int64Var(&req.Max, "max", capture.DefaultMaxResults, "Maximum number of emails to fetch")
	cmd.Flags().BoolVar(&req.Save, "save", false, "Merge the emails into the cache")
	cmd.Flags().StringVar(&req.CachePath, "cache-path", "", "Cache file (default: MAILOPS_CACHE_PATH or the built-in location)")
	cmd.Flags().StringVar(&req.Mbox, "mbox", "", "Also append the emails to this mbox file")
	out.register(cmd, false)

	_ = cmd.MarkFlagRequired("query")

	return cmd
}

// captureFlags are the capture command's flags.
type captureFlags struct {
	Query     string
	Max       int64
	Save      bool
	CachePath string
	Mbox      string
}
