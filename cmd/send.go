package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/livemoments/mailops/internal/gmail"
	"github.com/livemoments/mailops/internal/result"
	"github.com/livemoments/mailops/internal/workflow"
)

func newSendCmd() *cobra.Command {
	var (
		to, cc, bcc  string
		from         string
		subject      string
		body         string
		bodyFile     string
		replyTo      string
		replySubject string
		draft        bool
		out          outputFlags
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email or reply, or save it as a draft",
		Long: `Send an email from the configured account.

The body is taken from --body, from --body-file, or from standard input when
neither is given. With --reply-to the message joins an existing thread: the
subject becomes "Re: <original subject>" unless --reply-subject is set, and
the threading headers point at the last message of the thread.

A preview is shown and the message is only sent after confirmation.`,
		Example: `  mailops send --to client@example.com --subject "Quotation" --body-file quote.txt
  mailops send --to client@example.com --reply-to 18c2f0a1b2c3d4e5 --body "Confirmed, thanks!"
  mailops send --to client@example.com --subject "Draft" --body "..." --draft`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" && replyTo == "" {
				return errors.New("--subject is required unless --reply-to is set")
			}

			req := workflow.SendRequest{
				From:         from,
				To:           gmail.SplitAddresses(to),
				Cc:           gmail.SplitAddresses(cc),
				Bcc:          gmail.SplitAddresses(bcc),
				Subject:      subject,
				ReplyTo:      replyTo,
				ReplySubject: replySubject,
				Draft:        draft,
			}

			return run(cmd, "send", out, func(ctx context.Context, a *app) *result.Result {
				text, err := readBody(cmd, body, bodyFile, out.yes)
				if err != nil {
					return result.Failure(err)
				}
				req.Body = text

				mailer, err := a.gmailClient(ctx)
				if err != nil {
					return result.Failure(err)
				}
				return workflow.Send(ctx, a.env(confirmer(cmd, out)), mailer, req)
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipients, comma separated (required)")
	cmd.Flags().StringVar(&cc, "cc", "", "Cc recipients, comma separated")
	cmd.Flags().StringVar(&bcc, "bcc", "", "Bcc recipients, comma separated")
	cmd.Flags().StringVar(&from, "from", "", "Sender address (default: the account's address)")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&body, "body", "", "Plain text body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the plain text body from this file")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "Thread id to reply to")
	cmd.Flags().StringVar(&replySubject, "reply-subject", "", "Subject to reply with instead of the thread's")
	cmd.Flags().BoolVar(&draft, "draft", false, "Save as a draft instead of sending")
	out.register(cmd, true)

	_ = cmd.MarkFlagRequired("to")
	cmd.MarkFlagsMutuallyExclusive("body", "body-file")

	return cmd
}

// readBody returns the message body from the flag, the file or stdin. When
// stdin is a terminal the operator types the body and ends it with Ctrl+D,
// then answers the prompt on the same terminal. Piped stdin cannot also
// answer the prompt, so it needs --yes.
func readBody(cmd *cobra.Command, body, bodyFile string, yes bool) (string, error) {
	switch {
	case body != "":
		return body, nil
	case bodyFile != "":
		data, err := os.ReadFile(bodyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read body file: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	tty := isTerminal(in)
	if !tty && !yes {
		return "", errors.New("piped standard input cannot carry both the body and the confirmation; use --body, --body-file or --yes")
	}
	if tty {
		fmt.Fprintln(cmd.ErrOrStderr(), "Type the message body, then press Ctrl+D on an empty line:")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read body from stdin: %w", err)
	}
	return string(data), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
