package shell

import (
	"context"
	"log/slog"

	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/settings"
)

// Dispatch parses a neo:// URL and performs the action. Only parse errors
// are returned.
func (s *Shell) Dispatch(ctx context.Context, raw string) (scheme.Action, error) {
	a, err := scheme.Parse(raw)
	if err != nil {
		slog.Warn("invalid internal url", "url", raw, "error", err)
		return scheme.Action{}, err
	}

	s.perform(ctx, a)

	return a, nil
}

// Perform validates and performs an action built by the caller.
func (s *Shell) Perform(ctx context.Context, a scheme.Action) error {
	if err := a.Validate(); err != nil {
		return err
	}

	s.perform(ctx, a)

	return nil
}

func (s *Shell) perform(ctx context.Context, a scheme.Action) {
	slog.Debug("performing action", "action", a.Name, "params", a.Params.Encode())

	var err error
	switch a.Name {
	case scheme.ClearHistory:
		err = s.store.ClearHistory(ctx)
	case scheme.DeleteBookmark:
		err = s.store.RemoveBookmark(ctx, a.Get("url"))
	case scheme.OpenFile:
		err = s.opener.OpenFile(a.Get("path"))
	case scheme.ShowInFolder:
		err = s.opener.ShowInFolder(a.Get("path"))
	case scheme.CopyURL:
		err = s.opener.Copy(a.Get("url"))
	case scheme.SaveSettings:
		s.saveSettings(a)
	case scheme.ResetSettings:
		err = s.settings.Reset()
	}

	if err != nil {
		slog.Error("action failed", "action", a.Name, "error", err)
	}
}

// saveSettings applies every known key of a. Each key is set on its own so
// one invalid value does not discard the rest.
func (s *Shell) saveSettings(a scheme.Action) {
	for _, k := range a.Keys() {
		if !settings.IsKnown(k) {
			slog.Warn("ignoring unknown setting", "key", k)
			continue
		}

		if err := s.settings.SetFromString(k, a.Last(k)); err != nil {
			slog.Error("saving setting", "key", k, "error", err)
		}
	}
}
