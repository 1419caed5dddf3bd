package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailops application
var rootCmd = &cobra.Command{
	Use:   "mailops",
	Short: "Sends booking mail and creates booking events for Live Moments",
	Long: `mailops is the operator's tool for the booking mailbox and calendars.

It sends emails and replies, notifies the designer about instant print
bookings, puts bookings on the right calendar and captures search results
to a local cache. Every outbound action is previewed and confirmed first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// exitError carries a non-zero exit code for a command whose result has
// already been rendered.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailops version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func init() {
	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newNotifyDesignerCmd())
	rootCmd.AddCommand(newAddEventCmd())
	rootCmd.AddCommand(newCaptureCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
