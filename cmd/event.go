package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/livemoments/mailops/internal/calendar"
	"github.com/livemoments/mailops/internal/result"
	"github.com/livemoments/mailops/internal/workflow"
)

func newAddEventCmd() *cobra.Command {
	var (
		eventType, status string
		b                 calendar.Booking
		out               outputFlags
	)

	cmd := &cobra.Command{
		Use:   "add-event",
		Short: "Put a booking on the calendar",
		Long: `Create a calendar event for a booking.

Provisional (TBC) bookings go to the administration calendar with a colour
and a "TBC - " title prefix. Confirmed bookings go to the main calendar.
Start and end are wall-clock times in the configured time zone.`,
		Example: `  mailops add-event --company Acme --poc Jane --type EVENT --date 2026-04-01 \
    --start 18:00 --end 22:30 --location "Marina Bay" --email-id 18c2f0a1b2c3d4e5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := calendar.ParseEventType(eventType)
			if err != nil {
				return err
			}
			s, err := calendar.ParseStatus(status)
			if err != nil {
				return err
			}
			b.Type, b.Status = t, s
			if _, _, err := calendar.WallTimes(b); err != nil {
				return err
			}

			return run(cmd, "add-event", out, func(ctx context.Context, a *app) *result.Result {
				inserter, err := a.calendarClient(ctx)
				if err != nil {
					return result.Failure(err)
				}
				return workflow.AddEvent(ctx, a.env(confirmer(cmd, out)), inserter, b)
			})
		},
	}

	cmd.Flags().StringVar(&b.Company, "company", "", "Client company")
	cmd.Flags().StringVar(&b.POC, "poc", "", "Client point of contact")
	cmd.Flags().StringVar(&eventType, "type", "", "Booking type: EVENT or LIVE")
	cmd.Flags().StringVar(&b.Date, "date", "", "Event date, YYYY-MM-DD")
	cmd.Flags().StringVar(&b.Start, "start", "", "Start time, HH:MM")
	cmd.Flags().StringVar(&b.End, "end", "", "End time, HH:MM")
	cmd.Flags().StringVar(&b.Location, "location", "", "Venue")
	cmd.Flags().StringVar(&b.EmailID, "email-id", "", "Id of the booking email")
	cmd.Flags().StringVar(&b.Description, "description", "", "Extra notes")
	cmd.Flags().StringVar(&status, "status", string(calendar.StatusTBC), "Booking status: TBC or CONFIRMED")
	out.register(cmd, true)

	for _, name := range []string{"company", "poc", "type", "date", "start", "end", "location", "email-id"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
