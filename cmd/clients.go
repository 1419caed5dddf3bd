package cmd

import (
	"context"

	"github.com/livemoments/mailops/internal/calendar"
	"github.com/livemoments/mailops/internal/gmail"
)

func (a *app) gmailClient(ctx context.Context) (*gmail.Client, error) {
	httpClient, err := a.loader.HTTPClient(ctx, a.cfg.Account)
	if err != nil {
		return nil, err
	}
	return gmail.NewClient(ctx, httpClient, a.cfg.Account, a.provider.Metrics())
}

func (a *app) calendarClient(ctx context.Context) (*calendar.Client, error) {
	httpClient, err := a.loader.HTTPClient(ctx, a.cfg.Account)
	if err != nil {
		return nil, err
	}
	return calendar.NewClient(ctx, httpClient, a.cfg.Account, a.provider.Metrics())
}
