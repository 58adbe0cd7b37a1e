package cli

import (
	"context"
	"fmt"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/config"
	"github.com/rshade/companydir/internal/directory"
	"github.com/rshade/companydir/internal/logging"
	"github.com/rshade/companydir/internal/provider"
)

// sessionSettings overrides the display defaults from the config. Zero values keep the config.
type sessionSettings struct {
	pageSize int
}

// newSession builds the configured provider and a Session over it. No fetch is started.
func newSession(ctx context.Context, cfg *config.Config, settings sessionSettings) (*directory.Session, error) {
	p, err := provider.New(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("configuring record source: %w", err)
	}

	pageSize := cfg.Display.PageSize
	if settings.pageSize > 0 {
		pageSize = settings.pageSize
	}

	view, err := company.ParseViewMode(cfg.Display.DefaultView)
	if err != nil {
		return nil, err
	}

	return directory.NewSession(p,
		directory.WithPageSize(pageSize),
		directory.WithDefaultView(view),
		directory.WithLogger(logging.ComponentLogger(*logging.FromContext(ctx), "directory")),
	), nil
}

// loadSession builds a session and loads it to completion.
func loadSession(ctx context.Context, cfg *config.Config, settings sessionSettings) (*directory.Session, error) {
	session, err := newSession(ctx, cfg, settings)
	if err != nil {
		return nil, err
	}
	if err = session.Load(ctx); err != nil {
		closeSession(ctx, session)
		logging.FromContext(ctx).Error().Ctx(ctx).Err(err).Str("source", cfg.Source.Kind).
			Msg("failed to load companies")
		return nil, fmt.Errorf("loading companies: %w", err)
	}
	return session, nil
}

// closeSession releases the session's record source. A failure only affects cleanup, so it is logged.
func closeSession(ctx context.Context, session *directory.Session) {
	if err := session.Close(); err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).Err(err).Msg("failed to close record source")
	}
}
