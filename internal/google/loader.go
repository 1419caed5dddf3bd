package google

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/livemoments/mailops/internal/instrumentation"
	"github.com/livemoments/mailops/internal/logging"
)

// Loader hands out token sources and HTTP clients for stored accounts.
type Loader struct {
	store   *Store
	oauth   *oauth2.Config
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// NewLoader creates a Loader. oauthConf may be nil, in which case only
// unexpired tokens can be used. metrics and logger may be nil.
func NewLoader(store *Store, oauthConf *oauth2.Config, metrics *instrumentation.Metrics, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		store:   store,
		oauth:   oauthConf,
		metrics: metrics,
		logger:  logger.With(logging.Service("oauth")),
	}
}

// Store returns the credential store backing l.
func (l *Loader) Store() *Store {
	return l.store
}

// TokenSource returns a token source for account.
//
// A token that is still valid is used as stored. An expired token is
// refreshed once, written back to the primary credential path and then used.
// Missing credentials yield *NotConfiguredError; expired credentials that
// cannot be refreshed yield *AuthorizationError.
func (l *Loader) TokenSource(ctx context.Context, account string) (oauth2.TokenSource, error) {
	tok, path, err := l.store.Load(account)
	if err != nil {
		return nil, err
	}
	logger := logging.WithAccount(l.logger, account)

	if tok.Valid() {
		l.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultValid)
		logger.Debug("using stored token", logging.Path(path))
		if l.oauth == nil {
			return oauth2.StaticTokenSource(tok), nil
		}
		return l.oauth.TokenSource(ctx, tok), nil
	}

	if tok.RefreshToken == "" {
		l.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthorizationError{Account: account, Err: errors.New("token expired and has no refresh token")}
	}
	if l.oauth == nil {
		l.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthorizationError{Account: account, Err: fmt.Errorf("token expired: %w", ErrNoClient)}
	}

	ts := l.oauth.TokenSource(ctx, tok)
	fresh, err := ts.Token()
	if err != nil {
		l.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		logger.Warn("token refresh failed", logging.Err(err))
		return nil, &AuthorizationError{Account: account, Err: fmt.Errorf("token refresh failed: %w", err)}
	}
	l.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)

	if err := l.store.Save(account, fresh); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	logger.Info("refreshed token", logging.Path(l.store.Path(account)))

	return oauth2.ReuseTokenSource(fresh, ts), nil
}

// HTTPClient returns an authenticated HTTP client for account.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors,
// and every request is traced.
func (l *Loader) HTTPClient(ctx context.Context, account string) (*http.Client, error) {
	ts, err := l.TokenSource(ctx, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	transport, ok := client.Transport.(*oauth2.Transport)
	if !ok {
		return nil, fmt.Errorf("unexpected OAuth transport %T", client.Transport)
	}
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.ForceAttemptHTTP2 = false
	base.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	transport.Base = otelhttp.NewTransport(base)

	return client, nil
}
