package commands

import (
	"github.com/arthur-debert/modresolve/pkg/config"
	"github.com/arthur-debert/modresolve/pkg/ids"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/resolve"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// ResolveOptions defines the options for ResolveIDs
type ResolveOptions struct {
	FS     types.FS
	Config *config.Config
}

// ResolveResult is a resolution run with the inputs it used
type ResolveResult struct {
	Inputs *Inputs
	Result *resolve.Result
}

// NewResolver builds a resolver from configuration
func NewResolver(cfg *config.Config) *resolve.Resolver {
	return resolve.New(resolve.Options{
		Allocator:       ids.NewAllocator(cfg.KindRanges()),
		ResolvableKinds: cfg.ResolvableKinds(),
		StripPrefixes:   cfg.Resolve.StripPrefixes,
	})
}

// ResolveIDs loads inputs and computes the resolution maps
func ResolveIDs(opts ResolveOptions) (*ResolveResult, error) {
	log := logging.GetLogger("commands.resolve")
	log.Debug().Str("command", "ResolveIDs").Msg("Executing command")

	inputs, err := LoadInputs(opts.FS, opts.Config)
	if err != nil {
		return nil, err
	}

	result, err := NewResolver(opts.Config).Resolve(inputs.Catalog, inputs.Ranking, inputs.Preferred)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "ResolveIDs").Int("moves", len(result.Report.Moves)).Msg("Command finished")
	return &ResolveResult{Inputs: inputs, Result: result}, nil
}
