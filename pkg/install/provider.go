package install

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// ConfigFile is one config file shipped with a mod
type ConfigFile struct {
	Source      string
	Destination string
}

// ConfigProvider lists the config files of a mod in a stable order
type ConfigProvider interface {
	Files(mod string) ([]ConfigFile, error)
}

// DirProvider serves config files from <sourceRoot>/<mod>/, mapping each to
// the same relative path under targetRoot
type DirProvider struct {
	fs         types.FS
	sourceRoot string
	targetRoot string
	ignore     map[string]bool
}

// NewDirProvider creates a DirProvider. Files whose base name is in ignore
// are never installed.
func NewDirProvider(fs types.FS, sourceRoot, targetRoot string, ignore map[string]bool) *DirProvider {
	return &DirProvider{fs: fs, sourceRoot: sourceRoot, targetRoot: targetRoot, ignore: ignore}
}

// Files walks the mod's config directory in lexical order. A mod without a
// config directory has no files.
func (p *DirProvider) Files(mod string) ([]ConfigFile, error) {
	logger := logging.GetLogger("install.configs")
	root := filepath.Join(p.sourceRoot, mod)

	info, err := p.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("mod", mod).Msg("No config directory")
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot stat config directory").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "config source for %s is not a directory", mod).
			WithDetail("path", root)
	}

	var files []ConfigFile
	if err := p.walk(root, "", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (p *DirProvider) walk(root, rel string, files *[]ConfigFile) error {
	dir := filepath.Join(root, rel)
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read config directory").
			WithDetail("path", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if p.ignore[entry.Name()] {
			continue
		}
		child := filepath.Join(rel, entry.Name())
		if entry.IsDir() {
			if err := p.walk(root, child, files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, ConfigFile{
			Source:      filepath.Join(root, child),
			Destination: filepath.Join(p.targetRoot, child),
		})
	}
	return nil
}
