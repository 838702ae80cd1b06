package cli

import (
	"context"
	"fmt"

	"ruleofthree/internal/app"
	"ruleofthree/internal/config"
	"ruleofthree/internal/history"
	"ruleofthree/internal/i18n"
	"ruleofthree/internal/observability"
	"ruleofthree/internal/storage"
)

// session is an opened store plus the state restored from it.
type session struct {
	store storage.Store
	state *app.State
}

func openSession(ctx context.Context, cfg config.Config) (*session, error) {
	tag, err := i18n.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	state := app.New(
		history.New(store, cfg.Storage.Key),
		app.WithLogger(observability.Logger),
		app.WithLocale(tag),
	)
	state.Restore(ctx)

	return &session{store: store, state: state}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}
