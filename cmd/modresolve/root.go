package modresolve

import (
	"os"

	"github.com/arthur-debert/modresolve/internal/version"
	"github.com/arthur-debert/modresolve/pkg/config"
	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/filesystem"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/paths"
	"github.com/arthur-debert/modresolve/pkg/report"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	root       string
	configFile string
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "modresolve",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newResolveCmd(opts))
	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newPreferredCmd(opts))
	rootCmd.AddCommand(newListsCmd(opts))
	rootCmd.AddCommand(newCatalogCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig reads configuration for the selected root
func (o *globalOptions) loadConfig() (*config.Config, error) {
	p, err := paths.New(o.root)
	if err != nil {
		return nil, err
	}
	return config.Load(p, config.LoadOptions{ConfigFile: o.configFile})
}

// filesystem returns the disk, or an in-memory overlay of it for dry runs
func (o *globalOptions) filesystem() types.FS {
	if o.dryRun {
		return filesystem.NewDryRun()
	}
	return filesystem.NewOS()
}

// renderer builds a report renderer writing to the command's output
func (o *globalOptions) renderer(cmd *cobra.Command) (*report.Renderer, error) {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	if format == report.FormatAuto {
		format = report.FormatText
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			format = report.DetectFormat(f)
		}
	}
	return report.NewRenderer(cmd.OutOrStdout(), format), nil
}

// structured reports whether --format asks for machine readable output
func (o *globalOptions) structured() bool {
	format, err := report.ParseFormat(o.format)
	return err == nil && format.Structured()
}
