package commands

import (
	"github.com/arthur-debert/modresolve/pkg/catalog"
	"github.com/arthur-debert/modresolve/pkg/config"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/preferred"
	"github.com/arthur-debert/modresolve/pkg/priority"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// Inputs is everything a resolution run reads
type Inputs struct {
	// Catalog is restricted to the wanted mods plus vanilla
	Catalog   types.Catalog
	Ranking   *priority.Ranking
	Preferred preferred.Table
	// MissingWanted lists wanted mods absent from the catalog
	MissingWanted []string
	// Unlisted lists catalog mods the priority list does not name. They
	// rank below every listed mod.
	Unlisted []string
}

// LoadInputs reads the catalog, lists and ID dump named by cfg
func LoadInputs(fs types.FS, cfg *config.Config) (*Inputs, error) {
	logger := logging.GetLogger("commands.inputs")

	full, err := catalog.Load(fs, cfg.Paths.Catalog)
	if err != nil {
		return nil, err
	}

	wanted, found, err := priority.ReadList(fs, cfg.Paths.WantedList)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Info().Str("path", cfg.Paths.WantedList).Msg("No wanted list, using every catalog mod")
		wanted = modsExcept(full, cfg.Vanilla.Mod)
	}
	restricted, missing := full.Restrict(wanted, cfg.Vanilla.Mod)
	for _, mod := range missing {
		logger.Warn().Str("mod", mod).Msg("Wanted mod is not in the catalog")
	}
	if _, ok := full[cfg.Vanilla.Mod]; !ok {
		logger.Warn().Str("vanilla", cfg.Vanilla.Mod).Msg("Catalog has no vanilla entry")
	}

	order, found, err := priority.ReadList(fs, cfg.Paths.PriorityList)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Info().Str("path", cfg.Paths.PriorityList).Msg("No priority list, ranking by name")
	}

	ranking := priority.NewRanking(order, cfg.Vanilla.Mod)
	var unlisted []string
	for _, mod := range restricted.Mods() {
		if !ranking.IsVanilla(mod) && !ranking.Listed(mod) {
			unlisted = append(unlisted, mod)
		}
	}
	if found && len(unlisted) > 0 {
		logger.Info().Strs("mods", unlisted).Msg("Mods missing from the priority list rank lowest")
	}

	prefs, err := preferred.Load(fs, cfg.Paths.IDDump)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("mods", len(restricted)).
		Int("priority", len(order)).
		Int("preferred", len(prefs)).
		Msg("Inputs loaded")

	return &Inputs{
		Catalog:       restricted,
		Ranking:       ranking,
		Preferred:     prefs,
		MissingWanted: missing,
		Unlisted:      unlisted,
	}, nil
}

func modsExcept(c types.Catalog, vanilla string) []string {
	var mods []string
	for _, mod := range c.Mods() {
		if mod != vanilla {
			mods = append(mods, mod)
		}
	}
	return mods
}
