package commands

import (
	"github.com/arthur-debert/modresolve/pkg/config"
	"github.com/arthur-debert/modresolve/pkg/install"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/patch"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// InstallOptions defines the options for InstallMods
type InstallOptions struct {
	FS     types.FS
	Config *config.Config
}

// InstallResult is a resolution run followed by an install
type InstallResult struct {
	*ResolveResult
	Order   []string
	Outcome *install.Outcome
}

// NewPatcher builds a patcher from configuration
func NewPatcher(cfg *config.Config) *patch.Patcher {
	return patch.New(patch.Options{
		ItemOffset:        cfg.Patch.ItemOffset,
		UnshiftedItemMods: cfg.UnshiftedItemMods(),
		SectionKinds:      cfg.SectionKinds(),
		HeaderKinds:       cfg.ResolvableKinds(),
	})
}

// NewOrchestrator builds an install orchestrator writing through fs
func NewOrchestrator(fs types.FS, cfg *config.Config) *install.Orchestrator {
	return install.NewOrchestrator(
		fs,
		install.NewDirProvider(fs, cfg.Paths.ConfigSource, cfg.Paths.TargetConfig, cfg.ConfigIgnore()),
		install.NewCopyInstaller(fs, cfg.Paths.ModsSource, cfg.Paths.TargetMods),
		NewPatcher(cfg),
	)
}

// InstallMods resolves IDs and installs every wanted mod, lowest priority
// first
func InstallMods(opts InstallOptions) (*InstallResult, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "InstallMods").Msg("Executing command")

	resolved, err := ResolveIDs(ResolveOptions(opts))
	if err != nil {
		return nil, err
	}

	order := resolved.Inputs.Ranking.InstallOrder(resolved.Inputs.Catalog)
	outcome, err := NewOrchestrator(opts.FS, opts.Config).Run(order, resolved.Result)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("command", "InstallMods").
		Int("mods", len(order)).
		Bool("ready", outcome.Ready()).
		Msg("Command finished")
	return &InstallResult{ResolveResult: resolved, Order: order, Outcome: outcome}, nil
}
