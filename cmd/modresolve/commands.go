package modresolve

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modresolve/internal/version"
	"github.com/arthur-debert/modresolve/pkg/catalog"
	"github.com/arthur-debert/modresolve/pkg/commands"
	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/preferred"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newResolveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			res, err := commands.ResolveIDs(commands.ResolveOptions{FS: opts.filesystem(), Config: cfg})
			if err != nil {
				return err
			}
			warnMissing(cmd, res.Inputs.MissingWanted)
			return renderer.Resolution(res.Result)
		},
	}
}

func newInstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("root", opts.root).
				Bool("dry_run", opts.dryRun).
				Msg("Installing mods")

			res, err := commands.InstallMods(commands.InstallOptions{FS: opts.filesystem(), Config: cfg})
			if err != nil {
				return err
			}
			warnMissing(cmd, res.Inputs.MissingWanted)

			if !opts.structured() {
				if err := renderer.Resolution(res.Result); err != nil {
					return err
				}
			}
			if err := renderer.Outcome(res.Outcome); err != nil {
				return err
			}
			if opts.dryRun {
				fmt.Fprintln(cmd.ErrOrStderr(), MsgDryRunNotice)
			}
			return nil
		},
	}
}

func newPreferredCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "preferred [dump]",
		Short:   MsgPreferredShort,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			path := cfg.Paths.IDDump
			if len(args) == 1 {
				path = args[0]
			}
			table, err := preferred.Load(opts.filesystem(), path)
			if err != nil {
				return err
			}
			return renderer.Preferred(table)
		},
	}
}

func newListsCmd(opts *globalOptions) *cobra.Command {
	listsCmd := &cobra.Command{
		Use:     "lists",
		Short:   MsgListsShort,
		GroupID: "misc",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgListsInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			res, err := commands.InitLists(commands.InitListsOptions{
				FS:     opts.filesystem(),
				Config: cfg,
				Force:  force,
			})
			if err != nil {
				return err
			}
			for _, path := range res.Written {
				fmt.Fprintf(cmd.OutOrStdout(), MsgListWritten, path)
			}
			for _, path := range res.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), MsgListSkipped, path)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	listsCmd.AddCommand(initCmd)
	return listsCmd
}

func newCatalogCmd(opts *globalOptions) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:     "catalog",
		Short:   MsgCatalogShort,
		GroupID: "misc",
	}

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "convert <source> <destination>",
		Short: MsgConvertShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			fs := opts.filesystem()

			c, err := catalog.Load(fs, src)
			if err != nil {
				return err
			}
			format, err := catalog.DetectFormat(dst)
			if err != nil {
				return err
			}

			switch {
			case format == catalog.FormatSQLite && opts.dryRun:
				log.Info().Str("path", dst).Msg("Dry run, database not written")
			case format == catalog.FormatSQLite:
				if err := catalog.WriteSQLite(dst, c); err != nil {
					return err
				}
			default:
				data, err := catalog.Encode(c, format)
				if err != nil {
					return err
				}
				if err := fs.WriteFile(dst, data, 0644); err != nil {
					return errors.Wrap(err, errors.ErrFileWrite, "cannot write catalog").
						WithDetail("path", dst)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgCatalogWritten, len(c), dst)
			return nil
		},
	})
	return catalogCmd
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot encode config")
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigSources, strings.Join(cfg.Sources, ", "))
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func warnMissing(cmd *cobra.Command, missing []string) {
	if len(missing) == 0 {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), MsgMissingWanted, strings.Join(missing, ", "))
}
