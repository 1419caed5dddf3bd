package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize mailops for a Google account",
		Long: `Authorize mailops to use Gmail and Calendar for an account.

Open the printed URL, approve access, then paste the code (or the whole
http://localhost/?code=... address the browser ends up on) back into the
terminal. The credential is stored in the credentials directory and refreshed
automatically afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, "auth", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.provider.Shutdown(context.Background()) }()

			if a.loader.Store().Exists(a.cfg.Account) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s already has a stored credential; it is replaced once the new code is accepted.\n", a.cfg.Account)
			}

			state := uuid.NewString()
			authURL, err := a.loader.AuthCodeURL(state)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Authorizing %s\n\n", a.cfg.Account)
			fmt.Fprintf(out, "Visit this URL and approve access:\n\n%s\n\n", authURL)
			fmt.Fprint(out, "Paste the authorization code: ")

			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(line) == "" {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code, err := authCode(line, state)
			if err != nil {
				return err
			}

			if _, err := a.loader.Exchange(ctx, a.cfg.Account, code); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nCredential saved to %s\n", a.loader.Store().Path(a.cfg.Account))
			return nil
		},
	}

	return cmd
}

// authCode extracts the authorization code from what the operator pasted:
// either the bare code or the redirect address carrying it.
func authCode(input, state string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("no authorization code entered")
	}
	if !strings.Contains(input, "code=") {
		return input, nil
	}

	raw := input
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse redirect address: %w", err)
	}
	if got := values.Get("state"); got != "" && got != state {
		return "", errors.New("state mismatch in redirect address")
	}
	code := values.Get("code")
	if code == "" {
		return "", errors.New("redirect address has no code")
	}
	return code, nil
}
