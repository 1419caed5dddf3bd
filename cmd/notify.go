package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/livemoments/mailops/internal/result"
	"github.com/livemoments/mailops/internal/workflow"
)

func newNotifyDesignerCmd() *cobra.Command {
	var (
		req workflow.NotifyRequest
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "notify-designer",
		Short: "Tell the designer about a new instant print booking",
		Long: `Email the designer the client contact and event details of a confirmed
instant print booking so they can agree on the overlay design directly.

Sender and recipient come from the configuration (MAILOPS_NOTIFY_FROM and
MAILOPS_DESIGNER_EMAIL).`,
		Example: `  mailops notify-designer --client Acme --poc Jane --email jane@acme.com \
    --date 2026-04-01 --time 18:00 --venue "Marina Bay" --type Wedding`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "notify-designer", out, func(ctx context.Context, a *app) *result.Result {
				mailer, err := a.gmailClient(ctx)
				if err != nil {
					return result.Failure(err)
				}
				return workflow.NotifyDesigner(ctx, a.env(confirmer(cmd, out)), mailer, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.Client, "client", "", "Client company name")
	cmd.Flags().StringVar(&req.POC, "poc", "", "Client point of contact")
	cmd.Flags().StringVar(&req.POCEmail, "email", "", "Point of contact email")
	cmd.Flags().StringVar(&req.Date, "date", "", "Event date")
	cmd.Flags().StringVar(&req.Time, "time", "", "Event start time")
	cmd.Flags().StringVar(&req.Venue, "venue", "", "Venue")
	cmd.Flags().StringVar(&req.EventType, "type", "", "Event type, e.g. Wedding")
	cmd.Flags().BoolVar(&req.Draft, "draft", false, "Save as a draft instead of sending")
	out.register(cmd, true)

	for _, name := range []string{"client", "poc", "email", "date", "time", "venue", "type"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
