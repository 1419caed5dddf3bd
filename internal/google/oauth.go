package google

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/livemoments/mailops/internal/config"
)

// redirectURL is where Google sends the operator after consent. Nothing
// listens there; the code is copied from the address bar.
const redirectURL = "http://localhost"

// ErrNoClient is returned when neither a client secret file nor a client id
// has been configured.
var ErrNoClient = errors.New("no OAuth client configured: set GOOGLE_CREDENTIALS or GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")

// OAuthConfig returns the OAuth2 client configuration for cfg. A client
// secret file takes precedence over the client id and secret.
func OAuthConfig(cfg config.OAuth) (*oauth2.Config, error) {
	if cfg.SecretFile != "" {
		data, err := os.ReadFile(cfg.SecretFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read client secret file: %w", err)
		}
		conf, err := google.ConfigFromJSON(data, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse client secret file %s: %w", cfg.SecretFile, err)
		}
		return conf, nil
	}

	if cfg.ClientID == "" {
		return nil, ErrNoClient
	}

	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
	}, nil
}

// AuthCodeURL returns the consent URL the operator opens to authorize an
// account. Offline access with forced consent makes Google issue a refresh
// token every time.
func (l *Loader) AuthCodeURL(state string) (string, error) {
	if l.oauth == nil {
		return "", ErrNoClient
	}
	return l.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange trades an authorization code for a token and stores it for account.
func (l *Loader) Exchange(ctx context.Context, account, code string) (*oauth2.Token, error) {
	if l.oauth == nil {
		return nil, ErrNoClient
	}
	if err := validateAccount(account); err != nil {
		return nil, err
	}

	tok, err := l.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	if err := l.store.Save(account, tok); err != nil {
		return nil, err
	}

	l.logger.Info("stored new credential", "path", l.store.Path(account))
	return tok, nil
}
