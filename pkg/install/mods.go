package install

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// ModInstaller puts a mod's payload in place and returns the written paths
type ModInstaller interface {
	Install(mod string) ([]string, error)
}

// ArchiveExtensions are tried, in order, when the mod has no folder of its
// own in the source directory
var ArchiveExtensions = []string{".jar", ".zip"}

// CopyInstaller copies <sourceRoot>/<mod> (a folder or an archive) into
// targetRoot
type CopyInstaller struct {
	fs         types.FS
	sourceRoot string
	targetRoot string
}

// NewCopyInstaller creates a CopyInstaller
func NewCopyInstaller(fs types.FS, sourceRoot, targetRoot string) *CopyInstaller {
	return &CopyInstaller{fs: fs, sourceRoot: sourceRoot, targetRoot: targetRoot}
}

// Install copies the mod payload. A mod with nothing to copy, such as one
// that only ships config, is skipped.
func (c *CopyInstaller) Install(mod string) ([]string, error) {
	logger := logging.GetLogger("install.mods").With().Str("mod", mod).Logger()

	for _, name := range payloadNames(mod) {
		src := filepath.Join(c.sourceRoot, name)
		info, err := c.fs.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot stat mod payload").
				WithDetail("path", src)
		}

		var written []string
		dst := filepath.Join(c.targetRoot, name)
		if info.IsDir() {
			err = c.copyDir(src, dst, &written)
		} else {
			err = c.copyFile(src, dst, info.Mode().Perm(), &written)
		}
		if err != nil {
			return nil, err
		}
		logger.Info().Str("from", src).Int("files", len(written)).Msg("Installed mod")
		return written, nil
	}

	logger.Warn().Str("source", c.sourceRoot).Msg("No mod payload found, skipping")
	return nil, nil
}

func payloadNames(mod string) []string {
	names := []string{mod}
	for _, ext := range ArchiveExtensions {
		names = append(names, mod+ext)
	}
	return names
}

func (c *CopyInstaller) copyDir(src, dst string, written *[]string) error {
	if err := c.fs.MkdirAll(dst, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create mod directory").
			WithDetail("path", dst)
	}
	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read mod directory").
			WithDetail("path", src)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := c.copyDir(from, to, written); err != nil {
				return err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return errors.Wrap(err, errors.ErrFileAccess, "cannot stat mod file").
				WithDetail("path", from)
		}
		if err := c.copyFile(from, to, info.Mode().Perm(), written); err != nil {
			return err
		}
	}
	return nil
}

func (c *CopyInstaller) copyFile(src, dst string, perm os.FileMode, written *[]string) error {
	data, err := c.fs.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read mod file").
			WithDetail("path", src)
	}
	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create mod directory").
			WithDetail("path", filepath.Dir(dst))
	}
	if perm == 0 {
		perm = 0644
	}
	if err := c.fs.WriteFile(dst, data, perm); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write mod file").
			WithDetail("path", dst)
	}
	*written = append(*written, dst)
	return nil
}
