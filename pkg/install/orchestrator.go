package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/patch"
	"github.com/arthur-debert/modresolve/pkg/resolve"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/rs/zerolog"
)

// MergeBanner precedes config text appended to a file another mod already
// wrote. %s is the mod name.
const MergeBanner = "\n# ---- modresolve: config from %s appended below, merge by hand ----\n"

// MergeNotice records a config file two or more mods wrote to
type MergeNotice struct {
	Mod  string `json:"mod" yaml:"mod" toml:"mod"`
	Path string `json:"path" yaml:"path" toml:"path"`
}

// Outcome is the result of installing a set of mods
type Outcome struct {
	// Order is the install order of the mods handled
	Order []string
	// Pending holds, per mod, the edits that need a manual fix
	Pending map[string][]types.ConfigEdit
	Merges  []MergeNotice
	// Files lists every path written, mods and configs alike
	Files []string
}

func newOutcome() *Outcome {
	return &Outcome{Pending: make(map[string][]types.ConfigEdit)}
}

// Ready reports whether everything was applied automatically
func (o *Outcome) Ready() bool {
	for _, edits := range o.Pending {
		if len(edits) > 0 {
			return false
		}
	}
	return true
}

// PendingMods returns the mods with pending edits in install order
func (o *Outcome) PendingMods() []string {
	var mods []string
	for _, mod := range o.Order {
		if len(o.Pending[mod]) > 0 {
			mods = append(mods, mod)
		}
	}
	return mods
}

// Orchestrator installs mods and their patched configs
type Orchestrator struct {
	fs      types.FS
	configs ConfigProvider
	mods    ModInstaller
	patcher *patch.Patcher
	logger  zerolog.Logger
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(fs types.FS, configs ConfigProvider, mods ModInstaller, patcher *patch.Patcher) *Orchestrator {
	return &Orchestrator{
		fs:      fs,
		configs: configs,
		mods:    mods,
		patcher: patcher,
		logger:  logging.GetLogger("install"),
	}
}

// Run installs mods in the given order, each with the edits result holds
// for it. A fatal error stops the run; files already written stay.
func (o *Orchestrator) Run(mods []string, result *resolve.Result) (*Outcome, error) {
	done := logging.LogOperationStart(o.logger, "install")
	defer done()

	outcome := newOutcome()
	for _, mod := range mods {
		outcome.Order = append(outcome.Order, mod)

		written, err := o.mods.Install(mod)
		if err != nil {
			return nil, err
		}
		outcome.Files = append(outcome.Files, written...)

		report, err := o.installConfigs(mod, result.EditsFor(mod))
		if err != nil {
			return nil, err
		}
		outcome.Files = append(outcome.Files, report.files...)
		outcome.Merges = append(outcome.Merges, report.merges...)
		if len(report.pending) > 0 {
			outcome.Pending[mod] = report.pending
		}
	}

	o.logger.Info().
		Int("mods", len(mods)).
		Int("files", len(outcome.Files)).
		Int("merges", len(outcome.Merges)).
		Bool("ready", outcome.Ready()).
		Msg("Install complete")
	return outcome, nil
}

// InstallConfigs patches and appends every config file of mod and returns
// the edits that could not be applied automatically
func (o *Orchestrator) InstallConfigs(mod string, edits []types.ConfigEdit) ([]types.ConfigEdit, error) {
	report, err := o.installConfigs(mod, edits)
	if err != nil {
		return nil, err
	}
	return report.pending, nil
}

// openFile is a config file held in memory while edits are applied
type openFile struct {
	ConfigFile
	text    string
	exclude map[string]bool
}

type configReport struct {
	pending []types.ConfigEdit
	merges  []MergeNotice
	files   []string
}

func (o *Orchestrator) installConfigs(mod string, edits []types.ConfigEdit) (*configReport, error) {
	logger := o.logger.With().Str("mod", mod).Logger()

	sources, err := o.configs.Files(mod)
	if err != nil {
		return nil, err
	}

	files := make([]*openFile, 0, len(sources))
	for _, src := range sources {
		data, err := o.fs.ReadFile(src.Source)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read config file").
				WithDetail("mod", mod).
				WithDetail("path", src.Source)
		}
		files = append(files, &openFile{ConfigFile: src, text: string(data), exclude: make(map[string]bool)})
	}

	report := &configReport{}
	for _, edit := range edits {
		applied, err := o.applyToFirst(files, edit)
		if err != nil {
			return nil, err
		}
		if !applied {
			logger.Info().Str("edit", edit.String()).Msg("Edit needs manual action")
			report.pending = append(report.pending, edit)
		}
	}

	merged := false
	for _, f := range files {
		needsMerge, err := o.appendConfig(mod, f)
		if err != nil {
			return nil, err
		}
		report.files = append(report.files, f.Destination)
		if needsMerge {
			merged = true
			report.merges = append(report.merges, MergeNotice{Mod: mod, Path: f.Destination})
			logger.Warn().Str("path", f.Destination).Msg("Config already present, appended for manual merge")
		}
	}

	// A merged file needs every edit re-checked by hand
	if merged {
		report.pending = appendUnique(report.pending, edits...)
	}
	return report, nil
}

// applyToFirst applies edit to the first file that takes it without manual
// action. Texts of files that would need a TODO are left untouched so the
// edit can still land in a later file.
func (o *Orchestrator) applyToFirst(files []*openFile, edit types.ConfigEdit) (bool, error) {
	for _, f := range files {
		result, err := o.patcher.ApplyEdit(f.text, edit, f.exclude)
		if err != nil {
			return false, err
		}
		if !result.Edited() {
			continue
		}
		f.text = result.Text
		f.exclude[result.EditedLine] = true
		o.logger.Debug().
			Str("edit", edit.String()).
			Str("path", f.Destination).
			Msg("Edit applied")
		return true, nil
	}
	return false, nil
}

// appendConfig writes f's text to its destination and reports whether the
// destination already had content
func (o *Orchestrator) appendConfig(mod string, f *openFile) (bool, error) {
	if err := o.fs.MkdirAll(filepath.Dir(f.Destination), 0755); err != nil {
		return false, errors.Wrap(err, errors.ErrDirCreate, "cannot create config directory").
			WithDetail("path", filepath.Dir(f.Destination))
	}

	existing, err := o.fs.ReadFile(f.Destination)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrap(err, errors.ErrFileAccess, "cannot read installed config").
			WithDetail("path", f.Destination)
	}

	text := f.text
	needsMerge := len(existing) > 0
	if needsMerge {
		text = fmt.Sprintf(MergeBanner, mod) + text
	}

	if err := o.fs.AppendFile(f.Destination, []byte(text), 0644); err != nil {
		return false, errors.Wrap(err, errors.ErrFileWrite, "cannot write config").
			WithDetail("path", f.Destination)
	}
	return needsMerge, nil
}

func appendUnique(list []types.ConfigEdit, edits ...types.ConfigEdit) []types.ConfigEdit {
	seen := make(map[types.ConfigEdit]bool, len(list))
	for _, e := range list {
		seen[e] = true
	}
	for _, e := range edits {
		if seen[e] {
			continue
		}
		seen[e] = true
		list = append(list, e)
	}
	return list
}
