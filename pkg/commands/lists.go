package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/modresolve/pkg/catalog"
	"github.com/arthur-debert/modresolve/pkg/config"
	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/priority"
	"github.com/arthur-debert/modresolve/pkg/types"
)

const priorityHeader = `Mod priority, lowest first. A mod later in the list keeps its IDs
when it collides with an earlier one. Unlisted mods rank below all of these.`

const wantedHeader = `Mods to resolve and install, one per line.`

// InitListsOptions defines the options for InitLists
type InitListsOptions struct {
	FS     types.FS
	Config *config.Config
	// Force overwrites existing lists
	Force bool
}

// InitListsResult reports which list files were written or kept
type InitListsResult struct {
	Written []string
	Skipped []string
}

// InitLists writes priority and wanted lists naming every non-vanilla mod
// of the catalog in name order
func InitLists(opts InitListsOptions) (*InitListsResult, error) {
	log := logging.GetLogger("commands.lists")
	log.Debug().Str("command", "InitLists").Msg("Executing command")

	full, err := catalog.Load(opts.FS, opts.Config.Paths.Catalog)
	if err != nil {
		return nil, err
	}
	mods := modsExcept(full, opts.Config.Vanilla.Mod)

	result := &InitListsResult{}
	lists := []struct {
		path   string
		header string
	}{
		{opts.Config.Paths.PriorityList, priorityHeader},
		{opts.Config.Paths.WantedList, wantedHeader},
	}
	for _, l := range lists {
		if !opts.Force {
			if _, err := opts.FS.Stat(l.path); err == nil {
				result.Skipped = append(result.Skipped, l.path)
				continue
			} else if !os.IsNotExist(err) {
				return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot stat list").
					WithDetail("path", l.path)
			}
		}
		if err := opts.FS.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
			return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create list directory").
				WithDetail("path", filepath.Dir(l.path))
		}
		if err := priority.WriteList(opts.FS, l.path, l.header, mods); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, l.path)
	}

	log.Info().
		Str("command", "InitLists").
		Int("mods", len(mods)).
		Int("written", len(result.Written)).
		Msg("Command finished")
	return result, nil
}
