package modresolve

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Resolve ID conflicts between mods and install them"
	MsgResolveShort    = "Compute resolved IDs without writing anything"
	MsgInstallShort    = "Resolve IDs and install mods with patched configs"
	MsgPreferredShort  = "Show the IDs read from an ID dump"
	MsgListsShort      = "Manage priority and wanted lists"
	MsgListsInitShort  = "Create priority and wanted lists from the catalog"
	MsgCatalogShort    = "Work with content catalogs"
	MsgConvertShort    = "Convert a catalog between json, yaml, toml and sqlite"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice    = "DRY RUN MODE - nothing was written to disk"
	MsgMissingWanted   = "Wanted mods not in the catalog: %s\n"
	MsgListWritten     = "Wrote %s\n"
	MsgListSkipped     = "Kept existing %s (use --force to overwrite)\n"
	MsgCatalogWritten  = "Wrote %d mods to %s\n"
	MsgConfigSources   = "# sources: %s\n"
	MsgVersionFormat   = "modresolve version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without writing to disk"
	MsgFlagRoot    = "Working root holding inputs and modresolve.toml (default: $MODRESOLVE_ROOT or current directory)"
	MsgFlagConfig  = "Config file to use instead of <root>/modresolve.toml"
	MsgFlagFormat  = "Output format: auto, term, text, json, yaml, toml"
	MsgFlagForce   = "Overwrite existing lists"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimRight(msgResolveExampleRaw, "\n")

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
