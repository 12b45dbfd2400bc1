package config

import (
	"github.com/arthur-debert/modresolve/pkg/errors"
)

// Validate checks ranges and cross references between sections
func Validate(cfg *Config) error {
	if cfg.Vanilla.Mod == "" {
		return errors.New(errors.ErrConfigValid, "vanilla.mod must not be empty")
	}
	if cfg.Patch.ItemOffset < 0 {
		return errors.New(errors.ErrConfigValid, "patch.item_offset must not be negative").
			WithDetail("item_offset", cfg.Patch.ItemOffset)
	}

	for _, name := range sortedRangeNames(cfg.IDs) {
		r := cfg.IDs[name]
		if r.Min < 0 || r.Min > r.Max {
			return errors.Newf(errors.ErrConfigValid, "ids.%s: invalid range %d..%d", name, r.Min, r.Max).
				WithDetail("kind", name)
		}
		if r.LowCeiling == 0 {
			continue
		}
		if r.LowMin < 0 || r.LowMin > r.LowMax || r.LowMax >= r.LowCeiling {
			return errors.Newf(errors.ErrConfigValid,
				"ids.%s: low range %d..%d must be ordered and below ceiling %d",
				name, r.LowMin, r.LowMax, r.LowCeiling).
				WithDetail("kind", name)
		}
	}

	for _, kind := range cfg.Resolve.Kinds {
		if _, ok := cfg.IDs[kind]; !ok {
			return errors.Newf(errors.ErrConfigValid, "resolve.kinds lists %q but ids.%s is not configured", kind, kind).
				WithDetail("kind", kind)
		}
	}

	return nil
}
