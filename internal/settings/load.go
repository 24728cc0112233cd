package settings

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/cnharrison/jsonview/internal/logging"
)

const (
	EnvTheme    = "JSONVIEW_THEME"
	EnvFontSize = "JSONVIEW_FONT_SIZE"
)

// Load reads settings from store and falls back to Defaults when the store fails.
// It never returns an error; failures are logged.
func Load(ctx context.Context, store Store) Settings {
	s, err := store.Get(ctx, Defaults())
	if err != nil {
		logging.FromContext(ctx).Warn("using default settings", "err", err)
		return Defaults()
	}
	return s
}

// ApplyEnv overrides s from JSONVIEW_* environment variables.
func ApplyEnv(s Settings) (Settings, error) {
	return applyEnv(s, os.LookupEnv)
}

func applyEnv(s Settings, lookup func(string) (string, bool)) (Settings, error) {
	if v, ok := lookup(EnvTheme); ok && v != "" {
		s.Theme = v
	}
	if v, ok := lookup(EnvFontSize); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("%w: %s=%q", ErrInvalid, EnvFontSize, v)
		}
		s.FontSize = size
	}
	return s, nil
}
