package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Captain-Vikram/To-Do-List/internal/ui"
	"github.com/Captain-Vikram/To-Do-List/store"
)

// session is a store wired to the configured preference backend.
type session struct {
	store *store.Store
	prefs store.PreferenceStore
}

// openSession opens the preference backend, builds the store and loads the
// saved appearance. A failed appearance read is logged and the ambient
// signal is used instead.
func openSession(ctx context.Context) (*session, error) {
	prefs, err := store.OpenPreferences(ctx, appCfg.PreferenceOptions())
	if err != nil {
		return nil, fmt.Errorf("open preferences (%s): %w", appCfg.Preferences.Backend, err)
	}

	s := store.New(
		store.WithPreferences(prefs),
		store.WithAppearance(ui.TerminalAppearance{Mode: appCfg.Appearance.Default}),
		store.WithLogger(slog.Default()),
	)
	if err := s.InitializeDarkMode(ctx); err != nil {
		slog.Warn("could not read saved theme", "error", err)
	}
	return &session{store: s, prefs: prefs}, nil
}

// watcher returns the backend's change feed when it has one.
func (s *session) watcher() store.PreferenceWatcher {
	w, _ := s.prefs.(store.PreferenceWatcher)
	return w
}

func (s *session) Close() error {
	return s.prefs.Close()
}
